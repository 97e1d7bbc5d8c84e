package reconstruction

// tensor stores one state vector per point of a tensor product grid, axis 0
// varying slowest, the same layout a stencil uses
type tensor struct {
	shape   []int
	strides []int
	data    [][]float64
}

func newTensor(shape []int, m int) (t *tensor) {
	t = &tensor{shape: append([]int(nil), shape...), strides: make([]int, len(shape))}
	size := 1
	for axis := len(shape) - 1; axis >= 0; axis-- {
		t.strides[axis] = size
		size *= shape[axis]
	}
	t.data = make([][]float64, size)
	for i := range t.data {
		t.data[i] = make([]float64, m)
	}
	return
}

func (t *tensor) multiIndex(idx int) (multi []int) {
	multi = make([]int, len(t.shape))
	for axis := range t.shape {
		multi[axis] = idx / t.strides[axis]
		idx %= t.strides[axis]
	}
	return
}

func (t *tensor) flatIndex(multi []int) (idx int) {
	for axis, i := range multi {
		idx += i * t.strides[axis]
	}
	return
}

// along replaces the values on every line parallel to axis by the output of
// kernel, evaluated at len(points) positions
func (t *tensor) along(axis int, points []float64,
	kernel func(line [][]float64, points []float64, result [][]float64) error) (out *tensor, err error) {
	var (
		m     = len(t.data[0])
		shape = append([]int(nil), t.shape...)
		line  = make([][]float64, t.shape[axis])
		res   = make([][]float64, len(points))
	)
	shape[axis] = len(points)
	out = newTensor(shape, m)
	for idx := range t.data {
		multi := t.multiIndex(idx)
		if multi[axis] != 0 {
			continue
		}
		for j := range line {
			line[j] = t.data[idx+j*t.strides[axis]]
		}
		base := out.flatIndex(multi)
		for i := range res {
			res[i] = out.data[base+i*out.strides[axis]]
		}
		if err = kernel(line, points, res); err != nil {
			return nil, err
		}
	}
	return
}
