package executor

import "testing"

func TestIsCreateStatementDetectsCreate(t *testing.T) {
	cases := map[string]bool{
		"CREATE (a:RED {name: 'f'})": true,
		"  create (a)":               true,
		"MATCH (a) RETURN a":         false,
		"":                           false,
		"RETURN 0":                   false,
	}
	for query, want := range cases {
		if got := isCreateStatement(query); got != want {
			t.Errorf("isCreateStatement(%q) = %v, want %v", query, got, want)
		}
	}
}
