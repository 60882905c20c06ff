package fmp

import (
	"context"
	"encoding/json"

	"github.com/mangohow/fmpmcp/errors"
	"github.com/mangohow/fmpmcp/serialize"
	"github.com/mangohow/fmpmcp/transport/binding"
)

// Dispatcher 把一次工具调用翻译成一次上游GET请求
type Dispatcher struct {
	registry *Registry
	fetcher  Fetcher
	binding  binding.Binding
}

type DispatcherOption func(*Dispatcher)

func WithRegistry(registry *Registry) DispatcherOption {
	return func(d *Dispatcher) {
		d.registry = registry
	}
}

func WithArgumentBinding(b binding.Binding) DispatcherOption {
	return func(d *Dispatcher) {
		d.binding = b
	}
}

func NewDispatcher(fetcher Fetcher, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		fetcher: fetcher,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.registry == nil {
		d.registry = NewRegistry()
	}

	if d.binding == nil {
		d.binding = binding.DefaultBinding{}
	}

	return d
}

func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Endpoint 只生成上游路径, 不发起请求
func (d *Dispatcher) Endpoint(name string, args json.RawMessage) (string, error) {
	op, ok := d.registry.Lookup(name)
	if !ok {
		return "", errors.UnknownOperation(name)
	}

	return op.Endpoint(args, d.bindFunc(args))
}

// Dispatch 执行一次调用, 返回两空格缩进的上游JSON
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) (string, error) {
	op, ok := d.registry.Lookup(name)
	if !ok {
		return "", errors.UnknownOperation(name)
	}

	return d.invoke(ctx, op, args, d.bindFunc(args))
}

func (d *Dispatcher) bindFunc(args json.RawMessage) func(obj any) error {
	return func(obj any) error {
		return d.binding.Bind(args, obj)
	}
}

func (d *Dispatcher) invoke(ctx context.Context, op *Operation, args json.RawMessage, bind func(obj any) error) (string, error) {
	path, err := op.Endpoint(args, bind)
	if err != nil {
		return "", err
	}

	body, err := d.fetcher.Get(ctx, path)
	if err != nil {
		return "", err
	}

	text, err := serialize.Indent(body)
	if err != nil {
		return "", errors.UpstreamMalformedResponse(err)
	}

	return text, nil
}
