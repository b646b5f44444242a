package component

// Prefab remembers which prefab built an entity so reloads can find it.
type Prefab struct {
	Name string
}

var PrefabComponent = NewComponent[Prefab]()
