package options

import "testing"

func TestConstructors(t *testing.T) {
	sub := Suboption("x")
	if sub.Kind != KindSuboption || sub.Pattern != "x" {
		t.Fatalf("Suboption = %+v", sub)
	}
	opt := Option("foo", sub)
	if opt.Kind != KindOption || len(opt.Children) != 1 {
		t.Fatalf("Option = %+v", opt)
	}
	sec := Section("bar", opt)
	if sec.Kind != KindSection || len(sec.Children) != 1 {
		t.Fatalf("Section = %+v", sec)
	}
}

func TestWithCallbacks(t *testing.T) {
	called := 0
	cb := func(node *Node, lex Lexeme, userCtx any) int32 { called++; return 0 }
	n := Option("foo").WithEnter(cb).WithExit(cb).WithAccept(cb)
	n.Enter(&n, Lexeme{}, nil)
	n.Exit(&n, Lexeme{}, nil)
	n.Accept(&n, Lexeme{}, nil)
	if called != 3 {
		t.Fatalf("called = %d, want 3", called)
	}
}

func TestMatchesName(t *testing.T) {
	if !matchesName("*", []byte("anything")) {
		t.Fatal("wildcard pattern should match any name")
	}
	if !matchesName("foo", []byte("foo")) {
		t.Fatal("exact pattern should match identical name")
	}
	if matchesName("foo", []byte("foobar")) {
		t.Fatal("exact pattern should not match a longer name")
	}
	if matchesName("foo", []byte("fo")) {
		t.Fatal("exact pattern should not match a shorter name")
	}
}

func TestHasOptionOnlyMatchesSections(t *testing.T) {
	opt := Option("foo")
	if hasOption(&opt, []byte("foo")) != nil {
		t.Fatal("hasOption should refuse a non-section parent")
	}
	sec := Section("baz", Option("foo"), Option("bar"))
	if got := hasOption(&sec, []byte("bar")); got == nil || got.Pattern != "bar" {
		t.Fatalf("hasOption(bar) = %v, want bar", got)
	}
	if hasOption(&sec, []byte("nope")) != nil {
		t.Fatal("hasOption should not match an absent child")
	}
}

func TestHasSuboptionOnlyMatchesOptions(t *testing.T) {
	sec := Section("baz")
	if hasSuboption(&sec, []byte("x")) != nil {
		t.Fatal("hasSuboption should refuse a non-option parent")
	}
	opt := Option("foo", Suboption("x"))
	if got := hasSuboption(&opt, []byte("x")); got == nil || got.Pattern != "x" {
		t.Fatalf("hasSuboption(x) = %v, want x", got)
	}
}

func TestGenericSchemaAcceptsAnyIdentifier(t *testing.T) {
	schema := GenericSchema()
	root := Node{Kind: KindSection, Children: schema}
	if hasOption(&root, []byte("whatever")) == nil {
		t.Fatal("generic schema should accept any section/option name")
	}
	var opt *Node
	for i := range schema {
		if schema[i].Kind == KindOption {
			opt = &schema[i]
			break
		}
	}
	if opt == nil {
		t.Fatal("generic schema should include an option-kind entry")
	}
	if hasSuboption(opt, []byte("anything")) == nil {
		t.Fatal("generic schema's option entries should accept any suboption")
	}
}

func TestKindToTokenCode(t *testing.T) {
	cases := []struct {
		k    Kind
		want tokenCode
	}{
		{KindSection, tokSection},
		{KindOption, tokOption},
		{KindSuboption, tokSuboption},
		{KindInclude, tokInclude},
	}
	for _, c := range cases {
		if got := kindToTokenCode(c.k); got != c.want {
			t.Errorf("kindToTokenCode(%v) = %v, want %v", c.k, got, c.want)
		}
	}
}
