package viewport

// Number is either a literal value or an updater applied to the current
// value. It is resolved once at the top of each mutator, so callers can make
// relative adjustments without reading state first.
type Number struct {
	fn  func(current float64) float64
	val float64
	set bool
}

// Value returns a Number that replaces the current value with v.
func Value(v float64) Number {
	return Number{val: v, set: true}
}

// Func returns a Number that derives the new value from the current one.
// A nil fn behaves like Keep.
func Func(fn func(current float64) float64) Number {
	if fn == nil {
		return Keep()
	}
	return Number{fn: fn, set: true}
}

// Keep returns a Number that leaves the current value unchanged.
func Keep() Number {
	return Number{}
}

// By returns an updater that adds delta to the current value.
func By(delta float64) Number {
	return Func(func(current float64) float64 { return current + delta })
}

// Times returns an updater that multiplies the current value by factor.
func Times(factor float64) Number {
	return Func(func(current float64) float64 { return current * factor })
}

// Resolve returns the value n stands for given the current value.
func (n Number) Resolve(current float64) float64 {
	switch {
	case !n.set:
		return current
	case n.fn != nil:
		return n.fn(current)
	default:
		return n.val
	}
}

// Bool is the boolean counterpart of Number.
type Bool struct {
	fn  func(current bool) bool
	val bool
}

// BoolValue returns a Bool that replaces the current value with b.
func BoolValue(b bool) Bool {
	return Bool{val: b}
}

// BoolFunc returns a Bool derived from the current value.
func BoolFunc(fn func(current bool) bool) Bool {
	return Bool{fn: fn}
}

// Toggle returns a Bool that negates the current value.
func Toggle() Bool {
	return BoolFunc(func(current bool) bool { return !current })
}

// Resolve returns the value b stands for given the current value.
func (b Bool) Resolve(current bool) bool {
	if b.fn != nil {
		return b.fn(current)
	}
	return b.val
}
