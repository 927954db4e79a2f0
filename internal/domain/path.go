package domain

// PathNode - клетка пути и накопленная стоимость движения от начала пути.
type PathNode struct {
	Pos  Position `json:"pos"`
	Cost int      `json:"cost"`
}

// Path - упорядоченная последовательность клеток. Первая клетка - стартовая,
// ее стоимость 0.
type Path []PathNode

// Destination возвращает последнюю клетку пути.
func (p Path) Destination() Position {
	return p[len(p)-1].Pos
}

// TotalCost - накопленная стоимость до последней клетки.
func (p Path) TotalCost() int {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].Cost
}

// Prefix возвращает копию первых n клеток.
func (p Path) Prefix(n int) Path {
	if n > len(p) {
		n = len(p)
	}
	res := make(Path, n)
	copy(res, p[:n])
	return res
}

// Rebase возвращает копию пути, в которой стоимости отсчитываются от первой клетки.
func (p Path) Rebase() Path {
	res := make(Path, len(p))
	if len(p) == 0 {
		return res
	}
	base := p[0].Cost
	for i, node := range p {
		res[i] = PathNode{Pos: node.Pos, Cost: node.Cost - base}
	}
	return res
}
