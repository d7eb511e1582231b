package segprep

// classColors are the first 21 palette entries: background then 20 object classes.
var classColors = [21][3]byte{
	{0, 0, 0},
	{128, 0, 0},
	{0, 128, 0},
	{128, 128, 0},
	{0, 0, 128},
	{128, 0, 128},
	{0, 128, 128},
	{128, 128, 128},
	{64, 0, 0},
	{192, 0, 0},
	{64, 128, 0},
	{192, 128, 0},
	{64, 0, 128},
	{192, 0, 128},
	{64, 128, 128},
	{192, 128, 128},
	{0, 64, 0},
	{128, 64, 0},
	{0, 192, 0},
	{128, 192, 0},
	{0, 64, 128},
}

// Palette returns a fresh 256-entry RGB table (768 bytes) for label maps.
// Entries past the class colours are a grey ramp.
func Palette() []byte {
	p := make([]byte, 256*3)
	for i := 0; i < 256; i++ {
		p[3*i], p[3*i+1], p[3*i+2] = byte(i), byte(i), byte(i)
	}
	for i, c := range classColors {
		copy(p[3*i:], c[:])
	}
	return p
}
