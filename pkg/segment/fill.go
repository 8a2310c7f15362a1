package segment

import "thighcsa/internal/models"

// FillHoles closes the interior holes of a mask: false pixels that
// cannot reach the grid border by traversing only false pixels are
// flipped to true. Border-reachable background stays untouched. Used
// to recover femur marrow inside the femur outline and the full muscle
// interior before the femur is subtracted.
//
// The function is pure and total: a mask without holes comes back as
// an identical copy, and filling twice equals filling once.
func FillHoles(m *models.Mask) *models.Mask {
	// Sweep the exterior background from the border with a 4-connected
	// flood; anything false and unreached afterwards is interior.
	exterior := make([]bool, m.Rows*m.Cols)
	queue := make([]int, 0, 2*(m.Rows+m.Cols))

	push := func(row, col int) {
		idx := row*m.Cols + col
		if !exterior[idx] && !m.Bits[idx] {
			exterior[idx] = true
			queue = append(queue, idx)
		}
	}
	for col := 0; col < m.Cols; col++ {
		push(0, col)
		push(m.Rows-1, col)
	}
	for row := 0; row < m.Rows; row++ {
		push(row, 0)
		push(row, m.Cols-1)
	}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		row, col := idx/m.Cols, idx%m.Cols
		if row > 0 {
			push(row-1, col)
		}
		if row < m.Rows-1 {
			push(row+1, col)
		}
		if col > 0 {
			push(row, col-1)
		}
		if col < m.Cols-1 {
			push(row, col+1)
		}
	}

	out := models.NewMask(m.Rows, m.Cols)
	for i := range m.Bits {
		out.Bits[i] = m.Bits[i] || !exterior[i]
	}
	return out
}
