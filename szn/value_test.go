package szn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveScalar(t *testing.T) {
	testCases := []struct {
		raw      string
		wantKind ValueKind
		wantF    float64
		wantS    string
	}{
		{"42", ValueFloat, 42, ""},
		{"2.5", ValueFloat, 2.5, ""},
		{"-7", ValueFloat, -7, ""},
		{"1e3", ValueFloat, 1000, ""},
		{"switch", ValueString, 0, "switch"},
		{"true", ValueString, 0, "true"},
		{"4ever", ValueString, 0, "4ever"},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			v := resolveScalar(tc.raw)
			assert.Equal(t, tc.wantKind, v.Kind)
			if tc.wantKind == ValueFloat {
				assert.Equal(t, tc.wantF, v.Float)
			} else {
				assert.Equal(t, tc.wantS, v.Str)
			}
			assert.Equal(t, tc.raw, v.Raw)
		})
	}
}

func TestValue_Equal(t *testing.T) {
	t.Run("numeric by value", func(t *testing.T) {
		assert.True(t, resolveScalar("10").Equal(resolveScalar("10.0")))
	})

	t.Run("kind mismatch", func(t *testing.T) {
		assert.False(t, StringValue("10").Equal(FloatValue(10)))
	})

	t.Run("lists element-wise", func(t *testing.T) {
		a := ListValue(FloatValue(1), StringValue("x"))
		b := ListValue(FloatValue(1), StringValue("x"))
		c := ListValue(FloatValue(1), StringValue("y"))
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
	})

	t.Run("text and string differ", func(t *testing.T) {
		assert.False(t, TextValue("x").Equal(StringValue("x")))
	})
}

func TestValue_Interface(t *testing.T) {
	assert.Equal(t, "sw", StringValue("sw").Interface())
	assert.Equal(t, 2.5, FloatValue(2.5).Interface())
	assert.Equal(t, "a\nb", TextValue("a\nb").Interface())
	assert.Equal(t, []any{1.0, "x"}, ListValue(FloatValue(1), StringValue("x")).Interface())
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "2.5", FloatValue(2.5).String())
	assert.Equal(t, "(1, x)", ListValue(FloatValue(1), StringValue("x")).String())
}
