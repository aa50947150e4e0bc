package model

import "errors"

var (
	ErrInvalidValue   = errors.New("invalid value")
	ErrNoObservations = errors.New("no observations added, use 'add' to add training data")
	ErrNotTrained     = errors.New("model not yet trained, use 'train' to train the model")
	ErrInvalidInput   = errors.New("invalid input")
	ErrModeMismatch   = errors.New("model was trained in a different mode, use 'train' to retrain the model")
	ErrTrainingFailed = errors.New("training failed")
	ErrMapFailed      = errors.New("unable to map input")
	ErrUnknownMessage = errors.New("unknown message")
)
