package filter

// window keeps the most recent samples of a series, discarding anything older
// than max.
type window struct {
	max int
	buf []float64
}

func newWindow(max int) *window {
	if max <= 0 {
		max = 2
	}
	return &window{max: max, buf: make([]float64, 0, 2*max)}
}

func (w *window) Add(v float64) {
	if len(w.buf) == cap(w.buf) {
		// compact in place instead of growing
		n := copy(w.buf, w.buf[len(w.buf)-w.max+1:])
		w.buf = w.buf[:n]
	}
	w.buf = append(w.buf, v)
}

// View returns the current window without copying. It is valid until the
// next Add.
func (w *window) View() []float64 {
	if len(w.buf) > w.max {
		return w.buf[len(w.buf)-w.max:]
	}
	return w.buf
}

func (w *window) Values() []float64 {
	v := w.View()
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func (w *window) Len() int {
	return len(w.View())
}

func (w *window) Full() bool {
	return w.Len() == w.max
}

func (w *window) Last() float64 {
	if len(w.buf) == 0 {
		return 0
	}
	return w.buf[len(w.buf)-1]
}

func (w *window) Reset() {
	w.buf = w.buf[:0]
}
