package parser

// Merge объединяет несколько документов, более поздние переопределяют более ранние.
// Таблицы сливаются рекурсивно, порядок ключей — по первому появлению.
func Merge(docs ...*Document) *Document {
	if len(docs) == 0 {
		return nil
	}
	if len(docs) == 1 {
		return docs[0]
	}

	result := &Document{Root: NewTable(), Comments: make(map[string]string)}
	for _, d := range docs {
		if d == nil {
			continue
		}
		result.Root = mergeTables(result.Root, d.Root)
		for k, c := range d.Comments {
			result.Comments[k] = c
		}
	}
	return result
}

// mergeTables сливает b поверх a, не изменяя исходные таблицы
func mergeTables(a, b *Table) *Table {
	out := NewTable()
	if a != nil {
		for _, k := range a.Keys() {
			v, _ := a.Get(k)
			out.Set(k, v)
		}
	}
	if b == nil {
		return out
	}

	for _, k := range b.Keys() {
		v, _ := b.Get(k)
		existing, ok := out.Get(k)
		if !ok {
			out.Set(k, v)
			continue
		}
		et, eok := existing.(*Table)
		nt, nok := v.(*Table)
		if eok && nok {
			out.Set(k, mergeTables(et, nt))
			continue
		}
		out.Set(k, v)
	}
	return out
}
