package registry_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/apdavison/hbp-validation-client/internal/registry"
	"github.com/apdavison/hbp-validation-client/testutils"
)

func TestGetModelImage(t *testing.T) {
	r := setup(t)

	image, err := registry.GetModelImage(r, imageUUID)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(testutils.SampleModelImage(), *image))
}

func TestListModelImages(t *testing.T) {
	r := setup(t)

	images, err := registry.ListModelImages(r, modelUUID)
	require.NoError(t, err)
	require.Len(t, images, 1)
}

func TestListModelImagesByAlias(t *testing.T) {
	r := setup(t)

	images, err := registry.ListModelImagesByAlias(r, "sample-model")
	require.NoError(t, err)
	require.Len(t, images, 1)
}

func TestAddModelImage(t *testing.T) {
	r := setup(t)

	image := testutils.SampleModelImage()
	image.ID = uuid.Nil

	createdID, err := registry.AddModelImage(r, image)
	require.NoError(t, err)
	require.Equal(t, createdUUID, createdID)
}

func TestEditModelImage(t *testing.T) {
	r := setup(t)

	image := testutils.SampleModelImage()
	image.Caption = "Updated caption"

	require.NoError(t, registry.EditModelImage(r, image))
}
