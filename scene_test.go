package genesis_test

import (
	"testing"

	"pkg.ignition.dev/ignition-engine/genesis"
	"pkg.ignition.dev/ignition-engine/genesis/assert"
	"pkg.ignition.dev/ignition-engine/genesis/storage"
	"pkg.ignition.dev/ignition-engine/genesis/types"
)

type vertex struct {
	Position [3]float32
	Color    [3]float32
}

type shape struct {
	Vertices []vertex
}

func TestCreatingEntitiesIncrementsIDs(t *testing.T) {
	scene := genesis.NewScene()

	var entities []types.EntityID
	for i := 0; i < 10; i++ {
		id, err := scene.CreateEntity()
		assert.NilError(t, err)
		entities = append(entities, id)
	}

	assert.DeepEqual(t, []types.EntityID{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, entities)
}

func TestCreatingAnEntityAfterDeletingOneReusesRecycledID(t *testing.T) {
	scene := genesis.NewScene()

	entity, err := scene.CreateEntity()
	assert.NilError(t, err)
	assert.NilError(t, scene.DeleteEntity(entity))

	reused, err := scene.CreateEntity()
	assert.NilError(t, err)
	assert.Equal(t, entity, reused)
}

func TestRecycledIDsComeBackLIFO(t *testing.T) {
	scene := genesis.NewScene()
	ids, err := scene.CreateMany(3)
	assert.NilError(t, err)

	assert.NilError(t, scene.DeleteEntity(ids[0]))
	assert.NilError(t, scene.DeleteEntity(ids[2]))

	id, err := scene.CreateEntity()
	assert.NilError(t, err)
	assert.Equal(t, ids[2], id)

	id, err = scene.CreateEntity()
	assert.NilError(t, err)
	assert.Equal(t, ids[0], id)
}

func TestAssignThenReadRoundTrip(t *testing.T) {
	scene := genesis.NewScene()
	entity, err := scene.CreateEntity()
	assert.NilError(t, err)

	want := shape{Vertices: []vertex{
		{Position: [3]float32{0.55, -0.5, 0.0}, Color: [3]float32{1, 0, 0}},
		{Position: [3]float32{0.55, 0.55, 0.0}, Color: [3]float32{0, 1, 0}},
		{Position: [3]float32{-0.5, 0.55, 0.0}, Color: [3]float32{0, 0, 1}},
	}}
	genesis.SetComponent(scene, entity, want)

	got, err := genesis.GetComponent[shape](scene, entity)
	assert.NilError(t, err)
	assert.DeepEqual(t, want, *got)
}

func TestAssigningComponentsToSeveralEntitiesKeepsAssignmentOrder(t *testing.T) {
	scene := genesis.NewScene()

	entity1, err := scene.CreateEntity()
	assert.NilError(t, err)
	genesis.SetComponent(scene, entity1, 34)

	entity2, err := scene.CreateEntity()
	assert.NilError(t, err)
	genesis.SetComponent(scene, entity2, 25)

	all, err := genesis.GetAll[int](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, []int{34, 25}, all)
}

func TestAssigningExistingComponentOverwritesInPlace(t *testing.T) {
	scene := genesis.NewScene()
	entity, err := scene.CreateEntity()
	assert.NilError(t, err)

	genesis.SetComponent(scene, entity, 34)
	genesis.SetComponent(scene, entity, 25)

	all, err := genesis.GetAll[int](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, []int{25}, all)
}

func TestComponentsOfDifferentTypesDoNotMix(t *testing.T) {
	scene := genesis.NewScene()
	entity, err := scene.CreateEntity()
	assert.NilError(t, err)

	genesis.SetComponent(scene, entity, int32(34))
	genesis.SetComponent(scene, entity, float32(0.59))

	ints, err := genesis.GetAll[int32](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, []int32{34}, ints)

	floats, err := genesis.GetAll[float32](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, []float32{0.59}, floats)
}

func TestAppendComponentEncapsulatesValueInCollection(t *testing.T) {
	scene := genesis.NewScene()
	entity, err := scene.CreateEntity()
	assert.NilError(t, err)

	genesis.AppendComponent(scene, entity, 34)

	all, err := genesis.GetAll[[]int](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, [][]int{{34}}, all)
}

func TestAppendComponentGrowsCollectionInAssignmentOrder(t *testing.T) {
	scene := genesis.NewScene()
	entity, err := scene.CreateEntity()
	assert.NilError(t, err)

	genesis.AppendComponent(scene, entity, 34)
	genesis.AppendComponent(scene, entity, 59)

	all, err := genesis.GetAll[[]int](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, [][]int{{34, 59}}, all)
}

func TestAppendComponentKeepsPerEntityCollectionsIndependent(t *testing.T) {
	scene := genesis.NewScene()

	entity1, err := scene.CreateEntity()
	assert.NilError(t, err)
	genesis.AppendComponent(scene, entity1, 34)
	genesis.AppendComponent(scene, entity1, 59)

	entity2, err := scene.CreateEntity()
	assert.NilError(t, err)
	genesis.AppendComponent(scene, entity2, 63)
	genesis.AppendComponent(scene, entity2, 16)

	all, err := genesis.GetAll[[]int](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, [][]int{{34, 59}, {63, 16}}, all)
}

func TestAppendComponentWithMixedTypesStaysSegregated(t *testing.T) {
	scene := genesis.NewScene()

	entity1, err := scene.CreateEntity()
	assert.NilError(t, err)
	genesis.AppendComponent(scene, entity1, int32(34))
	genesis.AppendComponent(scene, entity1, float32(0.59))
	genesis.AppendComponent(scene, entity1, int32(81))

	entity2, err := scene.CreateEntity()
	assert.NilError(t, err)
	genesis.AppendComponent(scene, entity2, uint32(63))
	genesis.AppendComponent(scene, entity2, uint32(16))

	ints, err := genesis.GetAll[[]int32](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, [][]int32{{34, 81}}, ints)

	floats, err := genesis.GetAll[[]float32](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, [][]float32{{0.59}}, floats)

	uints, err := genesis.GetAll[[]uint32](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, [][]uint32{{63, 16}}, uints)
}

func TestScalarAndCollectionPoolsOfSameTypeAreSeparate(t *testing.T) {
	scene := genesis.NewScene()
	entity, err := scene.CreateEntity()
	assert.NilError(t, err)

	genesis.SetComponent(scene, entity, 7)
	genesis.AppendComponent(scene, entity, 8)

	scalars, err := genesis.GetAll[int](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, []int{7}, scalars)

	collections, err := genesis.GetAll[[]int](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, [][]int{{8}}, collections)
}

func TestGetAllFailsForATypeTheSceneHasNeverSeen(t *testing.T) {
	scene := genesis.NewScene()

	_, err := genesis.GetAll[vertex](scene)
	assert.ErrorIs(t, err, storage.ErrPoolNotFound)
}

func TestGetComponentDistinguishesMissingPoolFromMissingEntity(t *testing.T) {
	scene := genesis.NewScene()
	entity, err := scene.CreateEntity()
	assert.NilError(t, err)

	_, err = genesis.GetComponent[int](scene, entity)
	assert.ErrorIs(t, err, storage.ErrPoolNotFound)

	other, err := scene.CreateEntity()
	assert.NilError(t, err)
	genesis.SetComponent(scene, other, 1)

	_, err = genesis.GetComponent[int](scene, entity)
	assert.ErrorIs(t, err, storage.ErrComponentNotFound)
}

func TestAssigningToHighEntityIDLeavesLowerSlotsAbsent(t *testing.T) {
	scene := genesis.NewScene()
	ids, err := scene.CreateMany(5)
	assert.NilError(t, err)

	genesis.SetComponent(scene, ids[4], 99)

	for _, id := range ids[:4] {
		assert.False(t, genesis.HasComponent[int](scene, id))
	}
	assert.True(t, genesis.HasComponent[int](scene, ids[4]))

	all, err := genesis.GetAll[int](scene)
	assert.NilError(t, err)
	assert.DeepEqual(t, []int{99}, all)
}

func TestDeleteEntityRemovesComponentsFromEveryPool(t *testing.T) {
	scene := genesis.NewScene()
	ids, err := scene.CreateMany(2)
	assert.NilError(t, err)

	genesis.SetComponent(scene, ids[0], 34)
	genesis.SetComponent(scene, ids[0], "owner")
	genesis.AppendComponent(scene, ids[0], 59)
	genesis.SetComponent(scene, ids[1], 25)

	assert.NilError(t, scene.DeleteEntity(ids[0]))

	assert.False(t, genesis.HasComponent[int](scene, ids[0]))
	assert.False(t, genesis.HasComponent[string](scene, ids[0]))
	assert.False(t, genesis.HasComponent[[]int](scene, ids[0]))
	assert.True(t, genesis.HasComponent[int](scene, ids[1]))

	// the recycled ID must come back clean
	reused, err := scene.CreateEntity()
	assert.NilError(t, err)
	assert.Equal(t, ids[0], reused)
	assert.False(t, genesis.HasComponent[int](scene, reused))
}

func TestDeletingAnEntityTwiceFails(t *testing.T) {
	scene := genesis.NewScene()
	entity, err := scene.CreateEntity()
	assert.NilError(t, err)

	assert.NilError(t, scene.DeleteEntity(entity))
	assert.ErrorIs(t, scene.DeleteEntity(entity), storage.ErrInvalidRecycle)
}

func TestDeletingAnUnknownEntityFails(t *testing.T) {
	scene := genesis.NewScene()
	assert.ErrorIs(t, scene.DeleteEntity(42), storage.ErrInvalidRecycle)
}

func TestRemoveComponentCompactsThePool(t *testing.T) {
	scene := genesis.NewScene()
	ids, err := scene.CreateMany(3)
	assert.NilError(t, err)
	for i, id := range ids {
		genesis.SetComponent(scene, id, i*10)
	}

	genesis.RemoveComponent[int](scene, ids[0])

	all, err := genesis.GetAll[int](scene)
	assert.NilError(t, err)
	assert.Len(t, all, 2)
	assert.True(t, genesis.HasComponent[int](scene, ids[1]))
	assert.True(t, genesis.HasComponent[int](scene, ids[2]))

	// the moved entity must still resolve to its value after the swap
	moved, err := genesis.GetComponent[int](scene, ids[2])
	assert.NilError(t, err)
	assert.Equal(t, 20, *moved)
}

func TestRemovingAnAbsentComponentIsANoOp(t *testing.T) {
	scene := genesis.NewScene()
	entity, err := scene.CreateEntity()
	assert.NilError(t, err)

	genesis.RemoveComponent[int](scene, entity)

	genesis.SetComponent(scene, entity, 1)
	genesis.RemoveComponent[string](scene, entity)
	assert.True(t, genesis.HasComponent[int](scene, entity))
}

func TestEachComponentVisitsDenseOrder(t *testing.T) {
	scene := genesis.NewScene()
	ids, err := scene.CreateMany(3)
	assert.NilError(t, err)
	for i, id := range ids {
		genesis.SetComponent(scene, id, i+1)
	}

	var visited []int
	err = genesis.EachComponent(scene, func(_ types.EntityID, value int) bool {
		visited = append(visited, value)
		return true
	})
	assert.NilError(t, err)
	assert.DeepEqual(t, []int{1, 2, 3}, visited)
}

func TestRegisterComponentCreatesAnEmptyPool(t *testing.T) {
	scene := genesis.NewScene()
	genesis.RegisterComponent[vertex](scene)

	all, err := genesis.GetAll[vertex](scene)
	assert.NilError(t, err)
	assert.Len(t, all, 0)
}

func TestMutatingThroughGetComponentPointer(t *testing.T) {
	scene := genesis.NewScene()
	entity, err := scene.CreateEntity()
	assert.NilError(t, err)
	genesis.SetComponent(scene, entity, vertex{Color: [3]float32{1, 0, 0}})

	v, err := genesis.GetComponent[vertex](scene, entity)
	assert.NilError(t, err)
	v.Color = [3]float32{0, 1, 0}

	again, err := genesis.GetComponent[vertex](scene, entity)
	assert.NilError(t, err)
	assert.Equal(t, [3]float32{0, 1, 0}, again.Color)
}

func TestLiveEntityCountTracksCreationAndDeletion(t *testing.T) {
	scene := genesis.NewScene()
	ids, err := scene.CreateMany(4)
	assert.NilError(t, err)
	assert.Equal(t, 4, scene.LiveEntityCount())

	assert.NilError(t, scene.DeleteEntity(ids[1]))
	assert.Equal(t, 3, scene.LiveEntityCount())
	assert.False(t, scene.IsLive(ids[1]))
	assert.True(t, scene.IsLive(ids[0]))
}
