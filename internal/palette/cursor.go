package palette

// Cursor tracks the active row of the result list and the scroll
// offset of the list viewport. All measurements are in terminal lines.
type Cursor struct {
	active    int
	count     int
	scrollTop int

	viewHeight  int
	rowHeight   int
	rowsPerView int
}

const noRow = -1

func NewCursor(viewHeight, rowHeight int) Cursor {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	return Cursor{active: noRow, viewHeight: viewHeight, rowHeight: rowHeight}
}

// Reset points the cursor at the first of count rows, or at none.
func (c *Cursor) Reset(count int) {
	c.count = count
	c.scrollTop = 0
	if count > 0 {
		c.active = 0
	} else {
		c.active = noRow
	}
}

// Clear drops all rows.
func (c *Cursor) Clear() { c.Reset(0) }

// Active returns the active row, if any.
func (c Cursor) Active() (int, bool) {
	if c.active < 0 || c.active >= c.count {
		return 0, false
	}
	return c.active, true
}

func (c Cursor) Count() int     { return c.count }
func (c Cursor) ScrollTop() int { return c.scrollTop }

// Resize updates the viewport height and drops the cached rows per view.
func (c *Cursor) Resize(viewHeight int) {
	c.viewHeight = viewHeight
	c.rowsPerView = 0
	c.scrollTop = clamp(c.scrollTop, 0, c.maxScroll())
}

// Next moves down one row and wraps to the top after the last row.
func (c *Cursor) Next() {
	if c.count == 0 {
		return
	}
	if c.active < 0 || c.active >= c.count-1 {
		c.active = 0
		c.scrollTop = 0
		return
	}
	prev := c.active
	c.active++
	if c.scrolledDownOutOfView(c.active) {
		c.setScroll((prev - c.perView() + 2) * c.rowHeight)
	}
}

// Prev moves up one row and wraps to the bottom from the first row.
func (c *Cursor) Prev() {
	if c.count == 0 {
		return
	}
	if c.active <= 0 {
		c.active = c.count - 1
		c.setScroll(c.count * c.rowHeight)
		return
	}
	prev := c.active
	c.active--
	if c.scrolledUpOutOfView(c.active) {
		c.setScroll((prev - 1) * c.rowHeight)
	}
}

// SetActiveByPointer activates a row under the mouse without scrolling.
func (c *Cursor) SetActiveByPointer(i int) {
	if i < 0 || i >= c.count {
		return
	}
	c.active = i
}

// ScrollBy moves the viewport without touching the active row, the way
// a mouse wheel does.
func (c *Cursor) ScrollBy(lines int) {
	c.setScroll(c.scrollTop + lines)
}

// Visible returns the half-open range of rows intersecting the viewport.
func (c Cursor) Visible() (from, to int) {
	if c.viewHeight <= 0 {
		return 0, c.count
	}
	from = c.scrollTop / c.rowHeight
	to = (c.scrollTop + c.viewHeight + c.rowHeight - 1) / c.rowHeight
	if to > c.count {
		to = c.count
	}
	if from > to {
		from = to
	}
	return from, to
}

// RowAt maps a line inside the viewport to a row index.
func (c Cursor) RowAt(line int) (int, bool) {
	if line < 0 || (c.viewHeight > 0 && line >= c.viewHeight) {
		return 0, false
	}
	row := (c.scrollTop + line) / c.rowHeight
	if row >= c.count {
		return 0, false
	}
	return row, true
}

func (c *Cursor) perView() int {
	if c.rowsPerView == 0 {
		c.rowsPerView = c.viewHeight / c.rowHeight
		if c.rowsPerView < 1 {
			c.rowsPerView = 1
		}
	}
	return c.rowsPerView
}

// rowTop is the row's offset from the top of the viewport.
func (c Cursor) rowTop(i int) int {
	return i*c.rowHeight - c.scrollTop
}

func (c Cursor) scrolledDownOutOfView(i int) bool {
	if c.viewHeight <= 0 {
		return false
	}
	top := c.rowTop(i)
	if top < 0 {
		// moved out of view by direct scrolling
		return true
	}
	return top+c.rowHeight > c.viewHeight
}

func (c Cursor) scrolledUpOutOfView(i int) bool {
	if c.viewHeight <= 0 {
		return false
	}
	top := c.rowTop(i)
	if top >= c.viewHeight {
		// moved out of view by direct scrolling
		return true
	}
	return top < 0
}

func (c Cursor) maxScroll() int {
	if c.viewHeight <= 0 {
		return 0
	}
	m := c.count*c.rowHeight - c.viewHeight
	if m < 0 {
		return 0
	}
	return m
}

func (c *Cursor) setScroll(top int) {
	c.scrollTop = clamp(top, 0, c.maxScroll())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
