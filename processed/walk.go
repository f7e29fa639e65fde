package processed

// EachConcept calls fn once for every concept reachable from the
// document's top concepts through the hierarchy edge sets. Visit order
// is deterministic and cycles are walked once.
func (k *KOS) EachConcept(fn func(*Concept)) {
	seen := make(map[*Concept]bool)

	var visit func(c *Concept)
	visit = func(c *Concept) {
		if c == nil || seen[c] {
			return
		}
		seen[c] = true
		fn(c)
		for _, set := range []ConceptSet{
			c.Broader, c.Narrower, c.Related, c.Previous, c.Next, c.Ancestors,
		} {
			for _, n := range set {
				visit(n)
			}
		}
	}
	for _, c := range k.Concepts {
		visit(c)
	}
}
