package cache

type Cache[V any] interface {
	Get(key string) (V, bool)
	Put(key string, value V)
	Delete(key string)
	Nuke(sure bool)
}
