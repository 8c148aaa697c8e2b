package core

import (
	"strconv"
	"testing"
)

func BenchmarkParseAmount(b *testing.B) {
	inputs := []string{"5", "2.50", "1.5e3", "-0.25", "abc"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ParseAmount(inputs[i%len(inputs)])
	}
}

func BenchmarkRowStore_AddRow(b *testing.B) {
	s := NewRowStore()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.AddRow("Item", "4.50", "2")
	}
}

func BenchmarkComputeTotals(b *testing.B) {
	rows := make([]Row, 1000)
	for i := range rows {
		rows[i] = Row{ID: RowID(i), Item: "Item " + strconv.Itoa(i), Price: float64(i), Quantity: 2}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ComputeTotals(rows)
	}
}

func BenchmarkSchema_Cells(b *testing.B) {
	s := DefaultSchema()
	row := Row{ID: 1, Item: "Cheese", Price: 5, Quantity: 2}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Cells(row)
	}
}

func BenchmarkRowStore_AddRowParallel(b *testing.B) {
	s := NewRowStore()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = s.AddRow("Item", "1", "1")
		}
	})
}
