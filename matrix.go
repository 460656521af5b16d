package gwas

// Mat4 is a 4x4 affine transformation matrix in row-major order:
//
//	| m[0][0] m[0][1] m[0][2] m[0][3] |
//	| m[1][0] m[1][1] m[1][2] m[1][3] |
//	| m[2][0] m[2][1] m[2][2] m[2][3] |
//	|    0       0       0       1    |
//
// The last column holds the translation. Only the X and Y axes carry
// meaning for genomic plots; Z is kept so the matrix can be uploaded as a
// shader mat4 unchanged.
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(x, y, z float64) Mat4 {
	return Mat4{
		{1, 0, 0, x},
		{0, 1, 0, y},
		{0, 0, 1, z},
		{0, 0, 0, 1},
	}
}

// Scale creates a scaling matrix.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	}
}

// Multiply returns m * other, i.e. other is applied first.
func (m Mat4) Multiply(other Mat4) Mat4 {
	var out Mat4
	for r := range 4 {
		for c := range 4 {
			var sum float64
			for k := range 4 {
				sum += m[r][k] * other[k][c]
			}
			out[r][c] = sum
		}
	}
	return out
}

// Apply transforms the point (x, y, 0, 1).
func (m Mat4) Apply(x, y float64) (float64, float64) {
	return m[0][0]*x + m[0][1]*y + m[0][3],
		m[1][0]*x + m[1][1]*y + m[1][3]
}

// ApplyX transforms a coordinate along the X axis only, with y = 0.
func (m Mat4) ApplyX(x float64) float64 {
	return m[0][0]*x + m[0][3]
}

// ColumnMajor returns the matrix as 16 float32 values in column-major order,
// the layout expected by shader uniform blocks.
func (m Mat4) ColumnMajor() [16]float32 {
	var out [16]float32
	for c := range 4 {
		for r := range 4 {
			out[c*4+r] = float32(m[r][c])
		}
	}
	return out
}
