package gen

import "sync"

/*
LargeTableWarner emits a single warning if any introspected table exceeds
RowThreshold estimated rows, and never repeats for the remainder of a
generator run — the one-shot latch spec.md §5 describes for throttling
this warning.
*/
type LargeTableWarner struct {
	RowThreshold int64
	Warn         func(table string, estimatedRows int64)

	once sync.Once
}

// Check inspects the catalog and fires the warning at most once, for the
// first large table encountered in catalog order.
func (self *LargeTableWarner) Check(cat Catalog) {
	threshold := self.RowThreshold
	if threshold <= 0 {
		threshold = 10_000_000
	}

	for _, table := range cat.Tables {
		if table.EstimatedRows > threshold {
			self.once.Do(func() {
				if self.Warn != nil {
					self.Warn(table.Schema+`.`+table.Name, table.EstimatedRows)
				}
			})
			return
		}
	}
}
