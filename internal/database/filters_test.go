package database

import (
	"reflect"
	"testing"
)

func TestCondKeepsFragmentAndArgOrder(t *testing.T) {
	c := &Cond{}
	c.Add("price >= ?", 50.0)
	c.Add("rating >= ?", 4.0)
	c.Add("superhost = 1")

	want := "price >= ? AND rating >= ? AND superhost = 1"
	if got := c.Clause(); got != want {
		t.Errorf("Clause() = %q, want %q", got, want)
	}
	if got := c.Args(); !reflect.DeepEqual(got, []interface{}{50.0, 4.0}) {
		t.Errorf("Args() = %v", got)
	}
}

func TestCondAddIn(t *testing.T) {
	c := &Cond{}
	c.AddIn("neighborhood", []string{"Copacabana", "Ipanema"})

	want := "neighborhood IN (?, ?)"
	if got := c.Clause(); got != want {
		t.Errorf("Clause() = %q, want %q", got, want)
	}
	if got := c.Args(); !reflect.DeepEqual(got, []interface{}{"Copacabana", "Ipanema"}) {
		t.Errorf("Args() = %v", got)
	}
}

func TestCondAddInEmptyListAddsNothing(t *testing.T) {
	c := &Cond{}
	c.AddIn("neighborhood", nil)
	if !c.Empty() {
		t.Errorf("Cond not empty after AddIn with no values: %q", c.Clause())
	}
}

func TestCondEmpty(t *testing.T) {
	c := &Cond{}
	if !c.Empty() {
		t.Error("new Cond should be empty")
	}
	c.Add("a = ?", 1)
	if c.Empty() {
		t.Error("Cond with a fragment should not be empty")
	}
}
