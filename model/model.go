package model

// 金属板参数
type Env struct {
	Width              int        `json:"width" yaml:"width"`
	Height             int        `json:"height" yaml:"height"`
	InitialTemperature float64    `json:"initial_temperature" yaml:"initial_temperature"`
	Inject             *HeatPoint `json:"inject,omitempty" yaml:"inject,omitempty"`
	Resistance         float64    `json:"resistance" yaml:"resistance"`
}

// 注入的热源点
type HeatPoint struct {
	X           int     `json:"x" yaml:"x"`
	Y           int     `json:"y" yaml:"y"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// 每次迭代推送的温度场
type Frame struct {
	Iteration int         `json:"iteration"`
	Delta     float64     `json:"delta"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Cells     [][]float64 `json:"cells"` // Cells[x][y]
}

// 计算结束后的结果
type Result struct {
	State      string  `json:"state"`
	Iterations int     `json:"iterations"`
	Delta      float64 `json:"delta"`
}
