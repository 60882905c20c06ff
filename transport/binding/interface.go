// Package binding 将工具调用参数绑定到结构体
package binding

type Binding interface {
	Name() string
	Bind(data []byte, obj any) error
}

var (
	registeredBinding = map[string]Binding{
		JsonBinding{}.Name():    JsonBinding{},
		DefaultBinding{}.Name(): DefaultBinding{},
	}
)

func RegisterBinding(b Binding) {
	if b == nil {
		panic("binding is nil")
	}

	registeredBinding[b.Name()] = b
}

func GetBinding(name string) Binding {
	return registeredBinding[name]
}
