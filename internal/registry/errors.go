package registry

const (
	ErrorGettingModel            = "error getting model"
	ErrorListingModels           = "error listing models"
	ErrorRegisteringModel        = "error registering model"
	ErrorEditingModel            = "error editing model"
	ErrorGettingModelInstance    = "error getting model instance"
	ErrorListingModelInstances   = "error listing model instances"
	ErrorAddingModelInstance     = "error adding model instance"
	ErrorEditingModelInstance    = "error editing model instance"
	ErrorGettingModelImage       = "error getting model image"
	ErrorListingModelImages      = "error listing model images"
	ErrorAddingModelImage        = "error adding model image"
	ErrorEditingModelImage       = "error editing model image"
	ErrorGettingTest             = "error getting test"
	ErrorListingTests            = "error listing tests"
	ErrorAddingTest              = "error adding test"
	ErrorEditingTest             = "error editing test"
	ErrorGettingTestInstance     = "error getting test instance"
	ErrorListingTestInstances    = "error listing test instances"
	ErrorAddingTestInstance      = "error adding test instance"
	ErrorEditingTestInstance     = "error editing test instance"
	ErrorGettingResult           = "error getting result"
	ErrorListingResults          = "error listing results"
	ErrorRegisteringResult       = "error registering result"
	ErrorGettingAttributeOptions = "error getting attribute options"
)
