package token

import "testing"

func collect(t *testing.T, src string) []Token {
	t.Helper()

	tk, err := New(src)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var out []Token

	for !tk.IsEnd() {
		out = append(out, tk.Current())
		if err := tk.Next(); err != nil {
			t.Fatalf("Next returned error: %v", err)
		}
	}

	return out
}

func TestBrackets(t *testing.T) {
	toks := collect(t, "()")
	if len(toks) != 2 || toks[0].Kind != Open || toks[1].Kind != Close {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestSignedNumbers(t *testing.T) {
	cases := map[string]int64{"42": 42, "+42": 42, "-42": -42, "0": 0}

	for src, want := range cases {
		toks := collect(t, src)
		if len(toks) != 1 || toks[0].Kind != Number || toks[0].Num != want {
			t.Fatalf("%q: unexpected tokens: %+v", src, toks)
		}
	}
}

func TestLoneSignIsSymbol(t *testing.T) {
	for _, src := range []string{"+", "-"} {
		toks := collect(t, src)
		if len(toks) != 1 || toks[0].Kind != Symbol || toks[0].Symbol != src {
			t.Fatalf("%q: unexpected tokens: %+v", src, toks)
		}
	}
}

func TestSymbolsAndBooleans(t *testing.T) {
	for _, src := range []string{"foo", "list?", "set!", "<=", "#t", "#f"} {
		toks := collect(t, src)
		if len(toks) != 1 || toks[0].Kind != Symbol || toks[0].Symbol != src {
			t.Fatalf("%q: unexpected tokens: %+v", src, toks)
		}
	}
}

func TestQuoteAndDot(t *testing.T) {
	toks := collect(t, "'x . y")
	wantKinds := []Kind{Quote, Symbol, Dot, Symbol}

	if len(toks) != len(wantKinds) {
		t.Fatalf("unexpected tokens: %+v", toks)
	}

	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got Kind %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestWhitespaceIsIgnored(t *testing.T) {
	toks := collect(t, "  ( 1\t2\n)  ")
	if len(toks) != 4 {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestUnexpectedCharacterIsSyntaxError(t *testing.T) {
	if _, err := New("@"); err == nil {
		t.Fatalf("expected error tokenizing '@'")
	}
}
