// Package scenario 从 yaml 文件读取金属板参数，跳过控制台输入
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"heat/model"
)

// Load 读取 yaml 文件
func Load(path string) (model.Env, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Env{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	env, err := Parse(data)
	if err != nil {
		return model.Env{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return env, nil
}

// Parse 解析 yaml，未知字段报错
// 参数的取值范围由 calculator 检查
func Parse(data []byte) (model.Env, error) {
	var env model.Env
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return model.Env{}, fmt.Errorf("parse scenario: %w", err)
	}
	return env, nil
}
