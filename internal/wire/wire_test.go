package wire

import (
	"bytes"
	"testing"
)

func TestValueRoundTrip(t *testing.T) {
	cases := []Value{
		Int(0),
		Int(-7),
		Arr(),
		Arr(Int(1), Int(2), Int(3)),
		Arr(Arr(Int(1), Int(2)), Arr(Int(3))),
	}
	for _, v := range cases {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		if err := v.Encode(w); err != nil {
			t.Fatalf("encode: %v", err)
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("flush: %v", err)
		}
		got, err := DecodeValue(NewReader(&buf))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !valuesEqual(v, got) {
			t.Errorf("round trip mismatch: want %+v, got %+v", v, got)
		}
	}
}

func valuesEqual(a, b Value) bool {
	if a.IsArray != b.IsArray {
		return false
	}
	if !a.IsArray {
		return a.Scalar == b.Scalar
	}
	if len(a.Array) != len(b.Array) {
		return false
	}
	for i := range a.Array {
		if !valuesEqual(a.Array[i], b.Array[i]) {
			return false
		}
	}
	return true
}

func TestRequestRoundTripMethodCall(t *testing.T) {
	req := Request{
		Kind:           MethodCall,
		MethodName:     "solve",
		Arguments:      []Value{Int(3), Arr(Int(1), Int(2))},
		HasReturnValue: true,
		Callbacks:      []CallbackArity{{Name: "report", ParamCount: 1}},
	}
	var buf bytes.Buffer
	if err := req.Write(NewWriter(&buf)); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadRequest(NewReader(&buf))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.MethodName != req.MethodName || got.HasReturnValue != req.HasReturnValue {
		t.Fatalf("round trip mismatch: %+v vs %+v", req, got)
	}
	if len(got.Callbacks) != 1 || got.Callbacks[0] != req.Callbacks[0] {
		t.Errorf("callback arity mismatch: %+v", got.Callbacks)
	}
}

func TestRequestRoundTripCallbackReturn(t *testing.T) {
	v := int64(42)
	req := Request{Kind: CallbackReturn, ReturnValue: &v}
	var buf bytes.Buffer
	if err := req.Write(NewWriter(&buf)); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadRequest(NewReader(&buf))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.ReturnValue == nil || *got.ReturnValue != v {
		t.Fatalf("expected return value %d, got %+v", v, got.ReturnValue)
	}
}

func TestRequestRoundTripExit(t *testing.T) {
	req := Request{Kind: Exit}
	var buf bytes.Buffer
	if err := req.Write(NewWriter(&buf)); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadRequest(NewReader(&buf))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Kind != Exit {
		t.Errorf("expected Exit, got %v", got.Kind)
	}
}
