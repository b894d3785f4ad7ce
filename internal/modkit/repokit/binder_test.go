package repokit

import "testing"

type boundRepo struct{ q Queryer }

func TestBindFunc_HandsEachRepoItsQueryer(t *testing.T) {
	t.Parallel()

	var poolLog, txLog []string
	pool, tx := scriptQ{log: &poolLog}, scriptQ{log: &txLog}
	b := BindFunc[boundRepo](func(q Queryer) boundRepo { return boundRepo{q: q} })

	if b.Bind(pool).q != Queryer(pool) || b.Bind(tx).q != Queryer(tx) {
		t.Fatalf("binder must hand each repo the queryer it was bound to")
	}
}
