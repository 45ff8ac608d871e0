package testutils

const RootUrl = "http://fakeurl:3001"

var (
	LoginUrl            = RootUrl + "/auth/login"
	ModelsUrl           = RootUrl + "/models/"
	ModelInstancesUrl   = RootUrl + "/model-instances/"
	TestsUrl            = RootUrl + "/tests/"
	TestInstancesUrl    = RootUrl + "/test-instances/"
	ResultsUrl          = RootUrl + "/results/"
	AttributeOptionsUrl = RootUrl + "/authorizedcollabparameterrest/"
)
