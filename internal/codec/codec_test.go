package codec

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viewmarks/extension/pkg/core"
)

const threeEntriesV1 = `{"CameraPositions":[` +
	`{"NumpadKey":0,"PositionX":1797.94482,"PositionY":60.0,"PositionZ":1741.16931,"RotationX":-5.6245923,"RotationY":842.4311,"ZoomLevel":2.57508087},` +
	`{"NumpadKey":1,"PositionX":1535.61731,"PositionY":60.0,"PositionZ":1982.5896,"RotationX":35.210907,"RotationY":819.3053,"ZoomLevel":2.241456},` +
	`{"NumpadKey":5,"PositionX":1568.50171,"PositionY":63.0,"PositionZ":1968.88916,"RotationX":-20.0030479,"RotationY":959.7377,"ZoomLevel":1.94266248}` +
	`],"Version":1}`

const duplicateEntriesV1 = `{"CameraPositions":[` +
	`{"NumpadKey":0,"PositionX":1797.94482,"PositionY":60.0,"PositionZ":1741.16931,"RotationX":-5.6245923,"RotationY":842.4311,"ZoomLevel":2.57508087},` +
	`{"NumpadKey":1,"PositionX":1535.61731,"PositionY":60.0,"PositionZ":1982.5896,"RotationX":35.210907,"RotationY":819.3053,"ZoomLevel":2.241456},` +
	`{"NumpadKey":1,"PositionX":1568.50171,"PositionY":63.0,"PositionZ":1968.88916,"RotationX":-20.0030479,"RotationY":959.7377,"ZoomLevel":1.94266248}` +
	`],"Version":1}`

func newTestCodec(opts ...Option) (*Codec, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(logger, opts...), &buf
}

func TestEncode_EmptyMap(t *testing.T) {
	c, _ := newTestCodec()

	data := c.Encode(core.ShortcutMap{})
	require.NotEmpty(t, data)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &raw))
	assert.Equal(t, float64(CurrentVersion), raw["Version"])
	assert.Equal(t, []any{}, raw["CameraPositions"])
	assert.NotContains(t, raw, "CameraMoveDuration")
}

func TestEncode_NilMap(t *testing.T) {
	c, _ := newTestCodec()

	data := c.Encode(nil)
	assert.Equal(t, `{"Version":1,"CameraPositions":[]}`, data)
}

func TestEncode_OrderedBySlot(t *testing.T) {
	c, _ := newTestCodec()

	data := c.Encode(core.ShortcutMap{
		7: core.NewViewpoint(7, 7, 7, 7, 7, 7),
		2: core.NewViewpoint(2, 2, 2, 2, 2, 2),
		4: core.NewViewpoint(4, 4, 4, 4, 4, 4),
	})

	var env struct {
		CameraPositions []struct{ NumpadKey int }
	}
	require.NoError(t, json.Unmarshal([]byte(data), &env))
	require.Len(t, env.CameraPositions, 3)
	assert.Equal(t, 2, env.CameraPositions[0].NumpadKey)
	assert.Equal(t, 4, env.CameraPositions[1].NumpadKey)
	assert.Equal(t, 7, env.CameraPositions[2].NumpadKey)
}

func TestEncode_SkipsNonFiniteViewpoints(t *testing.T) {
	c, logs := newTestCodec()

	data := c.Encode(core.ShortcutMap{
		0: core.NewViewpoint(1, 2, 3, 4, 5, 6),
		1: core.NewViewpoint(math.NaN(), 2, 3, 4, 5, 6),
		2: core.NewViewpoint(1, 2, 3, 4, math.Inf(1), 6),
	})

	result := c.Decode(data)
	assert.Equal(t, core.ShortcutMap{0: core.NewViewpoint(1, 2, 3, 4, 5, 6)}, result)
	assert.Contains(t, logs.String(), "non-finite")
}

func TestRoundTrip(t *testing.T) {
	c, _ := newTestCodec()

	original := core.ShortcutMap{
		0: core.NewViewpoint(1, 2, 3, 4, 5, 6),
		5: core.NewViewpoint(6, 5, 4, 3, 2, 1),
	}

	result := c.Decode(c.Encode(original))
	assert.Equal(t, original, result)
}

func TestRoundTrip_RandomMaps(t *testing.T) {
	c, _ := newTestCodec()
	rng := rand.New(rand.NewSource(42))

	for size := 0; size <= 10; size++ {
		original := make(core.ShortcutMap, size)
		for _, slot := range rng.Perm(10)[:size] {
			original[slot] = core.NewViewpoint(
				rng.NormFloat64()*1e4,
				rng.NormFloat64()*1e2,
				rng.NormFloat64()*1e4,
				rng.Float64()*180-90,
				rng.NormFloat64()*1e3,
				rng.ExpFloat64(),
			)
		}

		result := c.Decode(c.Encode(original))
		assert.Equal(t, original, result, "size %d", size)
	}
}

func TestRoundTrip_ModData(t *testing.T) {
	c, _ := newTestCodec()

	duration := 1.25
	original := core.ModData{
		Shortcuts:    core.ShortcutMap{3: core.NewViewpoint(1, 2, 3, 4, 5, 6)},
		MoveDuration: &duration,
	}

	result := c.DecodeData(c.EncodeData(original))
	assert.Equal(t, original.Shortcuts, result.Shortcuts)
	require.NotNil(t, result.MoveDuration)
	assert.Equal(t, 1.25, *result.MoveDuration)
}

func TestDecode_EmptyResults(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"absent", ""},
		{"not json", "Not a JSON structure"},
		{"json null", "null"},
		{"json array", "[1,2,3]"},
		{"json number", "42"},
		{"version as string", `{"Version":"1"}`},
		{"missing version", `{"CameraPositions":[]}`},
		{"version 0", `{"Version":0}`},
		{"version 2", `{"Version":2}`},
		{"future version with v1 entries", `{"Version":7,"CameraPositions":[{"NumpadKey":1,"PositionX":1}]}`},
		{"v1 without positions", `{"CameraPositions":[],"Version":1}`},
		{"v1 positions not a list", `{"CameraPositions":{"NumpadKey":1},"Version":1}`},
		{"v1 fractional slot", `{"CameraPositions":[{"NumpadKey":1.5}],"Version":1}`},
		{"truncated", `{"Version":1,"CameraPositions":[{"NumpadKey":1,`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCodec()

			var result core.ShortcutMap
			assert.NotPanics(t, func() { result = c.Decode(tt.data) })
			assert.NotNil(t, result)
			assert.Empty(t, result)
		})
	}
}

func TestDecode_V1_MultipleSavedCameraPositions(t *testing.T) {
	c, _ := newTestCodec()

	result := c.Decode(threeEntriesV1)

	require.Len(t, result, 3)
	assert.Equal(t, core.NewViewpoint(1797.94482, 60, 1741.16931, -5.6245923, 842.4311, 2.57508087), result[0])
	assert.Equal(t, core.NewViewpoint(1535.61731, 60, 1982.5896, 35.210907, 819.3053, 2.241456), result[1])
	assert.Equal(t, core.NewViewpoint(1568.50171, 63, 1968.88916, -20.0030479, 959.7377, 1.94266248), result[5])
}

func TestDecode_V1_DuplicateSlotLastWins(t *testing.T) {
	c, logs := newTestCodec()

	result := c.Decode(duplicateEntriesV1)

	require.Len(t, result, 2)
	assert.Equal(t, core.NewViewpoint(1797.94482, 60, 1741.16931, -5.6245923, 842.4311, 2.57508087), result[0])
	assert.Equal(t, core.NewViewpoint(1568.50171, 63, 1968.88916, -20.0030479, 959.7377, 1.94266248), result[1])
	assert.Contains(t, logs.String(), "Multiple entries")
}

func TestDecode_V1_InvalidSlotsSkipped(t *testing.T) {
	data := `{"Version":1,"CameraPositions":[` +
		`{"NumpadKey":-1,"PositionX":1},` +
		`{"NumpadKey":2,"PositionX":2},` +
		`{"NumpadKey":10,"PositionX":10},` +
		`{"NumpadKey":9,"PositionX":9}]}`

	t.Run("unbounded", func(t *testing.T) {
		c, _ := newTestCodec()
		result := c.Decode(data)
		assert.Equal(t, []int{2, 9, 10}, result.Slots())
	})

	t.Run("max slots", func(t *testing.T) {
		c, logs := newTestCodec(WithMaxSlots(10))
		result := c.Decode(data)
		assert.Equal(t, []int{2, 9}, result.Slots())
		assert.Equal(t, 9.0, result[9].Position.X())
		assert.Contains(t, logs.String(), "Invalid numpad key")
	})
}

func TestDecode_V1_MoveDuration(t *testing.T) {
	tests := []struct {
		name string
		data string
		want *float64
	}{
		{"absent", `{"Version":1,"CameraPositions":[]}`, nil},
		{"zero", `{"Version":1,"CameraMoveDuration":0,"CameraPositions":[]}`, ptr(0)},
		{"positive", `{"Version":1,"CameraMoveDuration":0.75,"CameraPositions":[]}`, ptr(0.75)},
		{"negative", `{"Version":1,"CameraMoveDuration":-1,"CameraPositions":[]}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCodec()
			result := c.DecodeData(tt.data)
			assert.Equal(t, tt.want, result.MoveDuration)
		})
	}
}

func TestDecode_CaseInsensitiveFields(t *testing.T) {
	c, _ := newTestCodec()

	result := c.Decode(`{"version":1,"cameraPositions":[{"numpadKey":4,"zoomLevel":3}]}`)
	require.Contains(t, result, 4)
	assert.Equal(t, 3.0, result[4].Zoom)
}

func TestNew_NilLogger(t *testing.T) {
	c := New(nil)
	assert.NotPanics(t, func() {
		c.Decode("garbage")
		c.Encode(core.ShortcutMap{1: {}})
	})
}

func ptr(f float64) *float64 {
	return &f
}
