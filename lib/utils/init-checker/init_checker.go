package initchecker

import (
	"fmt"
	"reflect"
)

// CheckInit принимает пары "имя, зависимость" и падает на старте,
// если какая-то зависимость не инициализирована.
// Типизированный nil в интерфейсе тоже считается неинициализированным
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: нечетное число аргументов")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic("CheckInit: первый аргумент пары должен быть строкой")
		}
		if isNil(pairs[i+1]) {
			panic(fmt.Sprintf("зависимость %s не инициализирована", name))
		}
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
