package field

import "reflect"

var (
	reflectInt    = reflect.TypeOf(0)
	reflectInt64  = reflect.TypeOf(int64(0))
	reflectFloat  = reflect.TypeOf(float64(0))
	reflectBool   = reflect.TypeOf(false)
)
