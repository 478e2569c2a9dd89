package powerstroke

import (
	"encoding"
	"testing"
)

func TestEnumSpellings(t *testing.T) {
	tests := []struct {
		v    encoding.TextMarshaler
		name string
	}{
		{Linear, "Linear"},
		{CubicBezierFit, "CubicBezierFit"},
		{CubicBezierJohan, "CubicBezierJohan"},
		{CubicBezierSmooth, "CubicBezierSmooth"},
		{CentripetalCatmullRom, "CentripetalCatmullRom"},
		{SpiroInterpolator, "SpiroInterpolator"},
		{BevelJoin, "bevel"},
		{RoundJoin, "round"},
		{MiterJoin, "miter"},
		{ExtrapolatedMiterJoin, "extrapolated"},
		{SpiroJoin, "spiro"},
		{ExtrapolatedArcJoin, "extrp_arc"},
		{ZeroWidthCap, "zerowidth"},
		{RoundCap, "round"},
		{SquareCap, "square"},
		{ButtCap, "butt"},
		{PeakCap, "peak"},
	}
	for _, tt := range tests {
		b, err := tt.v.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != tt.name {
			t.Errorf("%#v marshals to %q, want %q", tt.v, b, tt.name)
		}

		var got any
		switch tt.v.(type) {
		case Interpolator:
			var v Interpolator
			err = v.UnmarshalText(b)
			got = v
		case JoinType:
			var v JoinType
			err = v.UnmarshalText(b)
			got = v
		case CapType:
			var v CapType
			err = v.UnmarshalText(b)
			got = v
		}
		if err != nil {
			t.Errorf("unmarshaling %q: %s", b, err)
			continue
		}
		if got != tt.v {
			t.Errorf("%q unmarshals to %v, want %v", b, got, tt.v)
		}
	}
}

func TestEnumParseErrors(t *testing.T) {
	if _, err := ParseInterpolator("linear"); err == nil {
		t.Error("interpolator names are case sensitive")
	}
	if _, err := ParseJoinType("mitre"); err == nil {
		t.Error("expected an error for an unknown join type")
	}
	_, err := ParseCapType("")
	if err == nil {
		t.Fatal("expected an error for an empty cap type")
	}
	if got, want := err.Error(), `unknown cap type ""`; got != want {
		t.Errorf("got error %q, want %q", got, want)
	}

	j := MiterJoin
	if err := j.UnmarshalText([]byte("nope")); err == nil {
		t.Error("expected an error")
	}
	if j != MiterJoin {
		t.Errorf("failed UnmarshalText changed the value to %v", j)
	}
}

func TestEnumStringOutOfRange(t *testing.T) {
	diff(t, "Interpolator(17)", Interpolator(17).String())
	diff(t, "JoinType(-1)", JoinType(-1).String())
	diff(t, "CapType(5)", CapType(5).String())
}
