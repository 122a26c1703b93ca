package bridge

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Overload resolution
// ---------------------------------------------------------------------------
//
// All method searches apply the unique-match policy: a lookup succeeds only
// when exactly one candidate matches within the relevant scope. The policy
// trades recall for safety; silently binding the wrong overload across the
// runtime boundary would be a memory hazard, not merely a wrong answer.
//
// Hierarchy searches work level by level, closest defining class first. The
// first level with at least one matching candidate decides the outcome:
// one match wins, two or more fail as ambiguous without consulting further
// ancestors.

// Resolution failure sentinels. Ambiguity and absence are reported
// distinctly; both are lookup-time errors, never managed exceptions.
var (
	ErrMethodNotFound  = errors.New("no matching method")
	ErrAmbiguousMethod = errors.New("ambiguous method match")
	ErrFieldNotFound   = errors.New("no matching field")
)

// FindMethod resolves a method on the class or its ancestors by name and
// typed signature.
func (c *Class) FindMethod(name string, ret Result, args ...Argument) (*Method, error) {
	return c.findInHierarchy(name, func(m *Method) bool {
		return signatureMatches(m, ret, args)
	})
}

// FindMethodStatic resolves a static method declared directly on the class
// by name and typed signature. No hierarchy walk: static lookups bind to
// the named class only.
func (c *Class) FindMethodStatic(name string, ret Result, args ...Argument) (*Method, error) {
	var found *Method
	for _, m := range c.Methods() {
		if m.Name() != name || !m.IsStatic() || !signatureMatches(m, ret, args) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%s.%s: %w", c, name, ErrAmbiguousMethod)
		}
		found = m
	}
	if found == nil {
		return nil, fmt.Errorf("%s.%s: %w", c, name, ErrMethodNotFound)
	}
	return found, nil
}

// FindMethodCallee resolves a method as a callee: alongside name, parameter
// and return matching, the receiver capability must agree with the method's
// static/instance flavor and declaring class. Used when the resolved method
// will itself be invoked as a managed method rather than through the
// runtime.
func (c *Class) FindMethodCallee(name string, recv Receiver, ret Result, params ...Argument) (*Method, error) {
	return c.findInHierarchy(name, func(m *Method) bool {
		return recv.matchesThis(m) && signatureMatches(m, ret, params)
	})
}

// FindMethodUnchecked resolves a method on the class or its ancestors by
// name and parameter count only. Use when the signature types are not
// statically known; the caller takes over the type obligation.
func (c *Class) FindMethodUnchecked(name string, paramCount int) (*Method, error) {
	return c.findInHierarchy(name, func(m *Method) bool {
		return len(m.Params()) == paramCount
	})
}

// FindField resolves a field on the class or its ancestors by name. Field
// names are not overloaded, so the first name match per level wins and the
// walk continues until one is found.
func (c *Class) FindField(name string) (*Field, error) {
	for h := c.Hierarchy(); ; {
		level := h.Next()
		if level == nil {
			break
		}
		for _, f := range level.Fields() {
			if f.Name() == name {
				return f, nil
			}
		}
	}
	return nil, fmt.Errorf("%s.%s: %w", c, name, ErrFieldNotFound)
}

// findInHierarchy is the shared hierarchy search: per level, collect
// candidates by name plus predicate; one wins, two or more fail as
// ambiguous, zero moves to the parent.
func (c *Class) findInHierarchy(name string, match func(*Method) bool) (*Method, error) {
	for h := c.Hierarchy(); ; {
		level := h.Next()
		if level == nil {
			break
		}
		var found *Method
		for _, m := range level.Methods() {
			if m.Name() != name || !match(m) {
				continue
			}
			if found != nil {
				return nil, fmt.Errorf("%s.%s: %w", level, name, ErrAmbiguousMethod)
			}
			found = m
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, fmt.Errorf("%s.%s: %w", c, name, ErrMethodNotFound)
}

// signatureMatches checks arity, every parameter capability and the return
// capability against the method's metadata.
func signatureMatches(m *Method, ret Result, args []Argument) bool {
	params := m.Params()
	if len(params) != len(args) {
		return false
	}
	for i, a := range args {
		if !a.matches(params[i].Type()) {
			return false
		}
	}
	return ret.matches(m.ReturnType())
}
