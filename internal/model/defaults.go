package model

const (
	// NullClassLabel is reserved for rejected predictions, observations cannot use it.
	NullClassLabel = 0

	DefaultNumInputDimensions  = 2
	DefaultNumOutputDimensions = 1
	DefaultNumHiddenNeurons    = 2

	DefaultMinEpochs              = 10
	DefaultMaxEpochs              = 100
	DefaultMinChange              = 1.0e-2
	DefaultTrainingRate           = 0.1
	DefaultMomentum               = 0.5
	DefaultGamma                  = 2.0
	DefaultNullRejectionCoeff     = 0.9
	DefaultRandTrainingIterations = 10
	DefaultValidationSetSize      = 20
	DefaultScaling                = true
)
