package binding

import (
	"errors"
	"reflect"
	"strconv"
)

const defaultTag = "default"

// DefaultBinding 先按 `default` 标签填充字段, 再用JSON覆盖,
// 因此默认值只作用于参数中没有出现的字段
type DefaultBinding struct {
	Tag string
}

func (d DefaultBinding) Name() string {
	return "default"
}

func (d DefaultBinding) Bind(data []byte, obj any) error {
	tag := d.Tag
	if tag == "" {
		tag = defaultTag
	}

	if err := SetDefaults(obj, tag); err != nil {
		return err
	}

	return JsonBinding{}.Bind(data, obj)
}

// SetDefaults 将标签中的默认值写入结构体字段
func SetDefaults(obj any, tag string) error {
	rt := reflect.TypeOf(obj)
	rv := reflect.ValueOf(obj)

	if rt == nil || rt.Kind() != reflect.Ptr {
		return errors.New("bind default failed: obj must be a pointer")
	}

	if rt.Elem().Kind() != reflect.Struct {
		return errors.New("bind default failed: obj must be a pointer of struct")
	}

	elemType := rt.Elem()
	elemValue := rv.Elem()

	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		fieldName := field.Name
		fieldValue := elemValue.Field(i)

		value, ok := field.Tag.Lookup(tag)
		if !ok {
			continue
		}

		// 跳过不可导出的字段
		if !fieldValue.CanSet() {
			continue
		}

		switch fieldValue.Kind() {
		case reflect.String:
			fieldValue.SetString(value)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return errors.New("bind default failed: invalid int value for field " + fieldName)
			}
			fieldValue.SetInt(v)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return errors.New("bind default failed: invalid uint value for field " + fieldName)
			}
			fieldValue.SetUint(v)
		case reflect.Bool:
			v, err := strconv.ParseBool(value)
			if err != nil {
				return errors.New("bind default failed: invalid bool value for field " + fieldName)
			}
			fieldValue.SetBool(v)
		case reflect.Float32, reflect.Float64:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return errors.New("bind default failed: invalid float value for field " + fieldName)
			}
			fieldValue.SetFloat(v)
		default:
			return errors.New("bind default failed: unsupported field type " + fieldValue.Kind().String() + " for field " + fieldName)
		}
	}

	return nil
}
