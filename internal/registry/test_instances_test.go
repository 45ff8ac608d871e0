package registry_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/apdavison/hbp-validation-client/internal/registry"
	"github.com/apdavison/hbp-validation-client/testutils"
)

func TestGetTestInstance(t *testing.T) {
	r := setup(t)

	instance, err := registry.GetTestInstance(r, testInstanceUUID)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(testutils.SampleTestInstance(), *instance))
}

func TestGetTestInstanceByVersion(t *testing.T) {
	r := setup(t)

	instance, err := registry.GetTestInstanceByVersion(r, testUUID, "1.0")
	require.NoError(t, err)
	require.Equal(t, testInstanceUUID, instance.ID)
}

func TestGetTestInstanceByAlias(t *testing.T) {
	r := setup(t)

	instance, err := registry.GetTestInstanceByAlias(r, "sample-test", "1.0")
	require.NoError(t, err)
	require.Equal(t, testInstanceUUID, instance.ID)
}

func TestListTestInstances(t *testing.T) {
	r := setup(t)

	instances, err := registry.ListTestInstances(r, testUUID)
	require.NoError(t, err)
	require.Len(t, instances, 1)
}

func TestAddTestInstance(t *testing.T) {
	r := setup(t)

	instance := testutils.SampleTestInstance()
	instance.ID = uuid.Nil
	instance.Version = "2.0"

	createdID, err := registry.AddTestInstance(r, instance)
	require.NoError(t, err)
	require.Equal(t, createdUUID, createdID)
}

func TestAddTestInstance_MissingTestDefinitionID(t *testing.T) {
	r := setup(t)

	_, err := registry.AddTestInstance(r, registry.TestInstance{Version: "2.0"})
	require.Error(t, err)
	require.ErrorContains(t, err, "test definition id is required")
}

func TestEditTestInstance(t *testing.T) {
	r := setup(t)

	instance := testutils.SampleTestInstance()
	instance.Path = "sampletest.SampleTestV2"

	require.NoError(t, registry.EditTestInstance(r, instance))
}

func TestEditTestInstance_MissingIdentification(t *testing.T) {
	r := setup(t)

	err := registry.EditTestInstance(r, registry.TestInstance{TestDefinitionID: testUUID})
	require.Error(t, err)
	require.ErrorContains(t, err, "instance id or (test definition id, version) is required")
}
