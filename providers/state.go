package providers

// IStateStoreProvider defines in-memory storage of last known switch states.
type IStateStoreProvider interface {
	Get(name string) (bool, bool)
	Set(name string, state bool) (changed bool)
	Delete(name string)
}
