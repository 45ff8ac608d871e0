package registry_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/apdavison/hbp-validation-client/internal/registry"
	"github.com/apdavison/hbp-validation-client/testutils"
)

func TestGetModelInstance(t *testing.T) {
	r := setup(t)

	instance, err := registry.GetModelInstance(r, modelInstanceUUID)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(testutils.SampleModelInstance(), *instance))
}

func TestGetModelInstanceByVersion(t *testing.T) {
	r := setup(t)

	instance, err := registry.GetModelInstanceByVersion(r, modelUUID, "1.0")
	require.NoError(t, err)
	require.Equal(t, modelInstanceUUID, instance.ID)
}

func TestGetModelInstanceByAlias(t *testing.T) {
	r := setup(t)

	instance, err := registry.GetModelInstanceByAlias(r, "sample-model", "1.0")
	require.NoError(t, err)
	require.Equal(t, modelInstanceUUID, instance.ID)
}

func TestListModelInstances(t *testing.T) {
	r := setup(t)

	instances, err := registry.ListModelInstances(r, modelUUID)
	require.NoError(t, err)
	require.Len(t, instances, 1)
}

func TestAddModelInstance(t *testing.T) {
	r := setup(t)

	instance := testutils.SampleModelInstance()
	instance.ID = uuid.Nil
	instance.Version = "2.0"

	createdID, err := registry.AddModelInstance(r, instance)
	require.NoError(t, err)
	require.Equal(t, createdUUID, createdID)
}

func TestAddModelInstance_MissingModelID(t *testing.T) {
	r := setup(t)

	_, err := registry.AddModelInstance(r, registry.ModelInstance{Version: "2.0"})
	require.Error(t, err)
	require.ErrorContains(t, err, "model id is required")
}

func TestEditModelInstance(t *testing.T) {
	r := setup(t)

	instance := testutils.SampleModelInstance()
	instance.Source = "https://github.com/example/sample-model/tree/v1"

	require.NoError(t, registry.EditModelInstance(r, instance))
}

func TestEditModelInstance_MissingIdentification(t *testing.T) {
	r := setup(t)

	err := registry.EditModelInstance(r, registry.ModelInstance{ModelID: modelUUID})
	require.Error(t, err)
	require.ErrorContains(t, err, "instance id or (model id, version) is required")
}
