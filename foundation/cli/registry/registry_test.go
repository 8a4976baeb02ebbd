// File: registry_test.go
// Title: Service Registry Tests
// Description: Tests for registration, singleton factories, lookups of
//              unknown tokens and type mismatches.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package registry

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	kiterror "github.com/msto63/cmdkit/foundation/core/error"
)

type service struct {
	name string
}

var (
	serviceToken = NewToken[*service]("service")
	countToken   = NewToken[int]("count")
)

func TestRegisterAndGet(t *testing.T) {
	r := New()
	want := &service{name: "a"}
	Register(r, serviceToken, want)

	got, err := Get(r, serviceToken)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Errorf("Get() returned %p, want the registered instance %p", got, want)
	}
}

func TestFactoryIsSingleton(t *testing.T) {
	r := New()
	calls := 0
	RegisterFactory(r, serviceToken, func(*Registry) (*service, error) {
		calls++
		return &service{name: "lazy"}, nil
	})

	if calls != 0 {
		t.Fatal("factory ran at registration")
	}
	if !r.Has(serviceToken) {
		t.Fatal("Has() = false for registered factory")
	}
	if calls != 0 {
		t.Fatal("Has() evaluated the factory")
	}

	first := MustGet(r, serviceToken)
	second := MustGet(r, serviceToken)
	if first != second {
		t.Error("factory result was not memoized")
	}
	if calls != 1 {
		t.Errorf("factory calls = %d, want 1", calls)
	}
}

func TestFailingFactoryIsRetried(t *testing.T) {
	r := New()
	calls := 0
	RegisterFactory(r, countToken, func(*Registry) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("not yet")
		}
		return 42, nil
	})

	_, err := Get(r, countToken)
	if !kiterror.HasCode(err, kiterror.CodeServiceFactory) {
		t.Fatalf("first Get() error = %v, want factory error", err)
	}
	got, err := Get(r, countToken)
	if err != nil || got != 42 {
		t.Errorf("second Get() = %d, %v", got, err)
	}
}

func TestFactoryCanResolveDependencies(t *testing.T) {
	r := New()
	Register(r, countToken, 3)
	RegisterFactory(r, serviceToken, func(reg *Registry) (*service, error) {
		n, err := Get(reg, countToken)
		if err != nil {
			return nil, err
		}
		return &service{name: string(rune('a' + n))}, nil
	})

	if got := MustGet(r, serviceToken).name; got != "d" {
		t.Errorf("name = %q", got)
	}
}

func TestServiceNotFound(t *testing.T) {
	r := New()
	if r.Has(serviceToken) {
		t.Fatal("Has() = true for unregistered token")
	}

	_, err := Get(r, serviceToken)
	if !kiterror.HasCode(err, kiterror.CodeServiceNotFound) {
		t.Errorf("Get() error = %v, want service not found", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustGet() did not panic")
		}
	}()
	MustGet(r, serviceToken)
}

func TestTypeMismatch(t *testing.T) {
	r := New()
	r.Set(StringKey("count"), "not an int")

	_, err := Get(r, countToken)
	if !kiterror.HasCode(err, kiterror.CodeServiceTypeMismatch) {
		t.Errorf("Get() error = %v, want type mismatch", err)
	}
}

func TestInstanceTakesPriorityOverFactory(t *testing.T) {
	r := New()
	RegisterFactory(r, countToken, func(*Registry) (int, error) { return 1, nil })
	Register(r, countToken, 2)
	if got := MustGet(r, countToken); got != 2 {
		t.Errorf("instance after factory = %d, want 2", got)
	}

	calls := 0
	other := NewToken[string]("label")
	Register(r, other, "instance")
	RegisterFactory(r, other, func(*Registry) (string, error) {
		calls++
		return "factory", nil
	})
	if got := MustGet(r, other); got != "instance" {
		t.Errorf("factory after instance = %q, want %q", got, "instance")
	}
	if calls != 0 {
		t.Errorf("factory ran %d times, want 0", calls)
	}
	if diff := cmp.Diff([]string{"count", "label"}, r.Keys()); diff != "" {
		t.Errorf("Keys() (-want +got):\n%s", diff)
	}
}

func TestKeysAndClear(t *testing.T) {
	r := New()
	Register(r, countToken, 1)
	RegisterFactory(r, serviceToken, func(*Registry) (*service, error) { return &service{}, nil })

	if diff := cmp.Diff([]string{"count", "service"}, r.Keys()); diff != "" {
		t.Errorf("Keys() (-want +got):\n%s", diff)
	}

	r.Clear()
	if r.Has(countToken) || r.Has(serviceToken) || len(r.Keys()) != 0 {
		t.Error("Clear() left entries behind")
	}
}

func TestGetOr(t *testing.T) {
	r := New()
	if got := GetOr(r, countToken, 7); got != 7 {
		t.Errorf("GetOr() missing = %d", got)
	}
	Register(r, countToken, 9)
	if got := GetOr(r, countToken, 7); got != 9 {
		t.Errorf("GetOr() present = %d", got)
	}
	if got := GetOr(nil, countToken, 5); got != 5 {
		t.Errorf("GetOr(nil) = %d", got)
	}
}

func TestTokenKey(t *testing.T) {
	a := NewToken[int]("x")
	b := NewToken[string]("x")
	if a.Key() != b.Key() {
		t.Error("tokens with the same key must share identity")
	}
	if a.String() != "token(x)" {
		t.Errorf("String() = %q", a.String())
	}
}
