package typesystem

// Equal reports structural equality. Products, sums and arrays compare
// element-wise; atoms compare by kind; externs by name.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case TFunc:
		b, ok := b.(TFunc)
		return ok && Equal(a.From, b.From) && Equal(a.To, b.To)
	case TProduct:
		b, ok := b.(TProduct)
		return ok && equalAll(a.Elements, b.Elements)
	case TArray:
		b, ok := b.(TArray)
		return ok && a.Length == b.Length && Equal(a.Element, b.Element)
	case TSum:
		b, ok := b.(TSum)
		return ok && equalAll(a.Options, b.Options)
	case TAtom:
		b, ok := b.(TAtom)
		return ok && a.Kind == b.Kind
	case TExtern:
		b, ok := b.(TExtern)
		return ok && a.Name == b.Name
	case TUnit:
		_, ok := b.(TUnit)
		return ok
	case TUnknown:
		_, ok := b.(TUnknown)
		return ok
	case nil:
		return b == nil
	}
	return false
}

func equalAll(as, bs []Type) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !Equal(as[i], bs[i]) {
			return false
		}
	}
	return true
}
