package systems

import "github.com/gitter-badger/zoc/internal/domain"

// pathItem - элемент фронта поиска пути.
type pathItem struct {
	Pos   domain.Position
	Cost  int // Накопленная стоимость. Чем меньше, тем раньше раскрывается.
	Seq   int // Порядок добавления, разрешает равенство стоимостей детерминированно
	Index int // Индекс в куче
}

// pathQueue реализует heap.Interface
type pathQueue []*pathItem

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	// MinHeap по стоимости, при равенстве - кто раньше добавлен
	if pq[i].Cost != pq[j].Cost {
		return pq[i].Cost < pq[j].Cost
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *pathQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*pathItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}
