package matrix

import "math"

func (m *Matrix) isVec3() bool {
	return m.rows == 3 && m.cols == 1
}

func (m *Matrix) isVector() bool {
	return m.rows == 1 || m.cols == 1
}

// Absolute returns the Euclidean norm of all elements.
func (m *Matrix) Absolute() float64 {
	var sum float64
	for _, v := range m.data {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Univec3 returns the unit vector of a 3x1 vector. A zero vector maps to
// the zero vector.
func (m *Matrix) Univec3() (*Matrix, error) {
	if !m.isVec3() {
		return nil, unaryErr("Univec3", m, ErrNotVec3)
	}
	d := m.Absolute()
	if d == 0 {
		return New(3, 1), nil
	}
	return Vec3(m.data[0]/d, m.data[1]/d, m.data[2]/d), nil
}

// SkewSym returns the skew-symmetric matrix of [a b c]:
//
//	|  0 -c  b |
//	|  c  0 -a |
//	| -b  a  0 |
func (m *Matrix) SkewSym() (*Matrix, error) {
	if !m.isVec3() {
		return nil, unaryErr("SkewSym", m, ErrNotVec3)
	}
	a, b, c := m.data[0], m.data[1], m.data[2]
	return Mat33(
		0, -c, b,
		c, 0, -a,
		-b, a, 0,
	), nil
}

// Dot returns the scalar product of two vectors with the same number of
// elements. Row and column vectors may be mixed.
func (m *Matrix) Dot(b *Matrix) (float64, error) {
	if !m.isVector() || !b.isVector() || len(m.data) != len(b.data) {
		return 0, binaryErr("Dot", m, b, ErrDimensionMismatch)
	}
	var sum float64
	for i, v := range m.data {
		sum += v * b.data[i]
	}
	return sum, nil
}

// Cross returns the vector product m x b of two 3x1 vectors.
func (m *Matrix) Cross(b *Matrix) (*Matrix, error) {
	if !m.isVec3() || !b.isVec3() {
		return nil, binaryErr("Cross", m, b, ErrNotVec3)
	}
	a := m.data
	c := b.data
	return Vec3(
		a[1]*c[2]-a[2]*c[1],
		a[2]*c[0]-a[0]*c[2],
		a[0]*c[1]-a[1]*c[0],
	), nil
}

// UnitCross returns the normalised vector product. Parallel or zero inputs
// yield ErrZeroVector.
func (m *Matrix) UnitCross(b *Matrix) (*Matrix, error) {
	v, err := m.Cross(b)
	if err != nil {
		return nil, err
	}
	d := v.Absolute()
	if d == 0 {
		return nil, binaryErr("UnitCross", m, b, ErrZeroVector)
	}
	v.ScaleAssign(1 / d)
	return v, nil
}

// PolFromCart converts a 3x1 cartesian vector to [magnitude, azimuth,
// elevation] in radians. Elevation is positive above the x-y plane when the
// third axis points down. A vector along the third axis has elevation -pi/2
// (pointing down-axis) or +pi/2, and the zero vector has elevation 0.
func (m *Matrix) PolFromCart() (*Matrix, error) {
	if !m.isVec3() {
		return nil, unaryErr("PolFromCart", m, ErrNotVec3)
	}
	v1, v2, v3 := m.data[0], m.data[1], m.data[2]
	d := m.Absolute()
	az := math.Atan2(v2, v1)

	var el float64
	horiz := math.Sqrt(v1*v1 + v2*v2)
	switch {
	case horiz > 0:
		el = math.Atan2(-v3, horiz)
	case v3 > 0:
		el = -math.Pi / 2
	case v3 < 0:
		el = math.Pi / 2
	}
	return Vec3(d, az, el), nil
}

// CartFromPol converts [magnitude, azimuth, elevation] back to cartesian
// components.
func (m *Matrix) CartFromPol() (*Matrix, error) {
	if !m.isVec3() {
		return nil, unaryErr("CartFromPol", m, ErrNotVec3)
	}
	mag, az, el := m.data[0], m.data[1], m.data[2]
	return Vec3(
		mag*math.Cos(el)*math.Cos(az),
		mag*math.Cos(el)*math.Sin(az),
		-mag*math.Sin(el),
	), nil
}

// Ellipse returns [major, minor, angle] for the symmetric 2x2 matrix of a
// quadratic form: the principal semi-axes and the orientation of the major
// axis with respect to the first coordinate axis.
func (m *Matrix) Ellipse() (*Matrix, error) {
	if m.rows != 2 || m.cols != 2 {
		return nil, unaryErr("Ellipse", m, ErrDimensionMismatch)
	}
	a11, a12, a22 := m.data[0], m.data[1], m.data[3]
	sum := a11 + a22
	disc := sum*sum - 4*(a11*a22-a12*a12)
	var root float64
	if disc >= 0 {
		root = math.Sqrt(disc)
	}
	major := (sum + root) / 2
	minor := (sum - root) / 2
	out := Vec3(major, minor, 0)
	if major == minor {
		return out, nil
	}

	var c float64
	if a11-major != 0 {
		r := -a12 / (a11 - major)
		c = r * math.Sqrt(1/(1+r*r))
	} else {
		r := -a12 / (a22 - major)
		c = math.Sqrt(1 / (1 + r*r))
	}
	if math.Abs(c) > 1 {
		c = math.Copysign(1, c)
	}
	out.data[2] = math.Acos(c)
	return out, nil
}
