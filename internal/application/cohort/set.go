package cohort

type Set[K comparable] map[K]struct{}

func NewSet[K comparable]() Set[K] {
	return make(Set[K])
}

func (s Set[K]) Has(key K) (ok bool) {
	_, ok = s[key]
	return
}

func (s Set[K]) Add(key K) {
	s[key] = struct{}{}
}

func (s Set[K]) Delete(key K) {
	delete(s, key)
}
