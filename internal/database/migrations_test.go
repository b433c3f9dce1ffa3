package database

import "testing"

func TestAllMigrationsOrderedAndReversible(t *testing.T) {
	migrations := AllMigrations()
	if len(migrations) == 0 {
		t.Fatal("danh sách migration rỗng")
	}

	seen := map[string]bool{}
	prev := ""
	for _, m := range migrations {
		if m.Name == "" {
			t.Fatal("migration thiếu tên")
		}
		if seen[m.Name] {
			t.Errorf("tên migration trùng: %s", m.Name)
		}
		seen[m.Name] = true

		// Tên có prefix số thứ tự nên so chuỗi là đủ cho tính thứ tự
		if prev != "" && m.Name <= prev {
			t.Errorf("migration %s phải đứng sau %s", m.Name, prev)
		}
		prev = m.Name

		if m.Up == nil {
			t.Errorf("migration %s thiếu Up", m.Name)
		}
		if m.Down == nil {
			t.Errorf("migration %s thiếu Down, mọi migration phải đảo ngược được", m.Name)
		}
	}
}
