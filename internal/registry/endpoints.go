package registry

const (
	AuthEndpoint             = "/auth/login"
	ModelsEndpoint           = "/models/"
	ModelInstancesEndpoint   = "/model-instances/"
	ModelImagesEndpoint      = "/images/"
	TestsEndpoint            = "/tests/"
	TestInstancesEndpoint    = "/test-instances/"
	ResultsEndpoint          = "/results/"
	AttributeOptionsEndpoint = "/authorizedcollabparameterrest/"
)
