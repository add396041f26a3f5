package source

import (
	"testing"
)

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.py", []byte("\xEF\xBB\xBFx = 1\r\ny = 2\r\n"))
	f := fs.Get(id)
	if f == nil {
		t.Fatal("file not found")
	}
	if got, want := string(f.Content), "x = 1\ny = 2\n"; got != want {
		t.Fatalf("content mismatch:\nwant %q\ngot  %q", want, got)
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatal("expected FileVirtual flag")
	}
}

func TestLineAccess(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.py", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		n    int
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := f.Line(tc.n); got != tc.want {
			t.Errorf("Line(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
	if got := f.NumLines(); got != 3 {
		t.Errorf("NumLines() = %d, want 3", got)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.py", []byte("ab\ncd\n"))
	start, end := fs.Resolve(Span{File: id, Start: 3, End: 5})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start = %+v, want line 2 col 1", start)
	}
	if end.Line != 2 || end.Col != 3 {
		t.Fatalf("end = %+v, want line 2 col 3", end)
	}
}

func TestCodingCookie(t *testing.T) {
	cases := []struct {
		src  string
		name string
		ok   bool
	}{
		{"# -*- coding: latin-1 -*-\nx = 1\n", "latin-1", true},
		{"#!/usr/bin/env python\n# coding=cp1251\n", "cp1251", true},
		{"# -*- coding: utf-8 -*-\n", "", false},
		{"x = 1\ny = 2\n# coding: latin-1\n", "", false}, // cookie за пределами первых двух строк
	}
	for _, tc := range cases {
		name, ok := codingCookie([]byte(tc.src))
		if ok != tc.ok || name != tc.name {
			t.Errorf("codingCookie(%q) = %q,%v want %q,%v", tc.src, name, ok, tc.name, tc.ok)
		}
	}
}
