package fmp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mangohow/fmpmcp/errors"
)

// Operation 一个对外提供的工具: 描述信息, 参数schema以及上游路径的生成规则
type Operation struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema

	resolved *jsonschema.Resolved
	// build 将参数绑定到该操作的参数结构体并生成上游路径
	build func(bind func(obj any) error) (string, error)
}

// Endpoint 校验参数并生成上游路径(不含apikey).
// bind 负责把原始参数写入参数结构体, 通常带有默认值处理
func (op *Operation) Endpoint(args json.RawMessage, bind func(obj any) error) (string, error) {
	instance, err := decodeArguments(args)
	if err != nil {
		return "", errors.MissingOrMalformedParameter(op.Name, err)
	}

	if err := op.resolved.Validate(instance); err != nil {
		return "", errors.MissingOrMalformedParameter(op.Name, err)
	}

	path, err := op.build(bind)
	if err != nil {
		return "", errors.MissingOrMalformedParameter(op.Name, err)
	}

	return path, nil
}

// decodeArguments 缺省或 null 视为空对象, 其它非对象参数报错
func decodeArguments(args json.RawMessage) (map[string]any, error) {
	args = bytes.TrimSpace(args)
	if len(args) == 0 || bytes.Equal(args, []byte("null")) {
		return map[string]any{}, nil
	}

	var instance map[string]any
	if err := json.Unmarshal(args, &instance); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	if instance == nil {
		instance = map[string]any{}
	}

	return instance, nil
}

// newOperation 参数类型A由build的签名确定
func newOperation[A any](name, description string, schema *jsonschema.Schema, build func(a *A) string) *Operation {
	return &Operation{
		Name:        name,
		Description: description,
		Schema:      schema,
		build: func(bind func(obj any) error) (string, error) {
			var a A
			if err := bind(&a); err != nil {
				return "", err
			}

			return build(&a), nil
		},
	}
}

type Registry struct {
	ops    []*Operation
	byName map[string]*Operation
	now    func() time.Time
}

type RegistryOption func(*Registry)

// WithClock 指定当前时间, 用于生成默认日期
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// NewRegistry 构建全部操作, schema无法解析属于编程错误, 直接panic
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byName: make(map[string]*Operation),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, op := range r.catalogue() {
		if _, ok := r.byName[op.Name]; ok {
			panic("fmp: duplicate operation " + op.Name)
		}

		resolved, err := op.Schema.Resolve(nil)
		if err != nil {
			panic(fmt.Sprintf("fmp: resolve schema for %s: %v", op.Name, err))
		}
		op.resolved = resolved

		r.ops = append(r.ops, op)
		r.byName[op.Name] = op
	}

	return r
}

// Operations 按目录顺序返回全部操作
func (r *Registry) Operations() []*Operation {
	return r.ops
}

// Lookup 名称大小写敏感
func (r *Registry) Lookup(name string) (*Operation, bool) {
	op, ok := r.byName[name]
	return op, ok
}

func (r *Registry) today() string {
	return r.now().UTC().Format(time.DateOnly)
}
