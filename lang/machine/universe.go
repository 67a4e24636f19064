package machine

import "github.com/mna/lotus/lang/types"

// Universe defines the set of universal built-ins core to the language, such
// as Nil and True and the atomic cell functions. This should not be modified,
// so that the language built-ins are always available.
var Universe = map[string]types.Value{
	"nil":   types.Nil,
	"true":  types.True,
	"false": types.False,

	MakeAtomic.Name():            MakeAtomic,
	AtomicLoad.Name():            AtomicLoad,
	AtomicStore.Name():           AtomicStore,
	AtomicExchange.Name():        AtomicExchange,
	AtomicCompareExchange.Name(): AtomicCompareExchange,
	AtomicFetchUpdate.Name():     AtomicFetchUpdate,
}
