package ir

// MangleKey computes the overload key used to register and resolve a
// function: its name concatenated with the Key of each argument type
// in declaration order. Two functions with the same name but
// different argument types produce different keys and can coexist;
// two functions with an identical key in the same scope are a
// duplicate-definition error.
func MangleKey(name string, argTypes []TypeDef) string {
	key := name
	for _, t := range argTypes {
		key += "$" + t.Key()
	}
	return key
}
