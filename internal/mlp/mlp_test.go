package mlp

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drakos74/xmlp/internal/api"
	"github.com/drakos74/xmlp/internal/attr"
	"github.com/drakos74/xmlp/internal/learner"
	"github.com/drakos74/xmlp/internal/model"
	"github.com/drakos74/xmlp/internal/storage"
	"github.com/drakos74/xmlp/internal/storage/file/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMLP(t *testing.T) (*MLP, *api.Recorder) {
	recorder := api.NewRecorder()
	m := New(recorder, json.NewLocalStorage()).WithSeed(1)
	send(t, m, "max_epochs 50")
	send(t, m, "rand_training_iterations 2")
	return m, recorder
}

func send(t *testing.T, m *MLP, line string) {
	require.NoError(t, dispatch(t, m, line))
}

func dispatch(t *testing.T, m *MLP, line string) error {
	msg, err := api.ParseMessage(line)
	require.NoError(t, err)
	return m.Dispatch(msg)
}

func addClassification(t *testing.T, m *MLP) {
	for i := 0; i < 10; i++ {
		d := float64(i) / 100
		send(t, m, fmt.Sprintf("add 1 %f %f", 0.1+d, 0.1+d))
		send(t, m, fmt.Sprintf("add 2 %f %f", 0.9-d, 0.9-d))
	}
}

func addRegression(t *testing.T, m *MLP) {
	for i := 0; i < 10; i++ {
		x := float64(i) / 10
		send(t, m, fmt.Sprintf("add %f %f %f %f %f %f 0.5", x, 1-x, 2*x, x, 1-x, x/2))
	}
}

func TestMLP_SetMode(t *testing.T) {

	type test struct {
		outputs int
		samples bool
		mode    int
		err     error
		active  model.Mode
	}

	tests := map[string]test{
		"to-classification": {
			outputs: 3,
			mode:    0,
			active:  model.Classification,
		},
		"to-classification-with-samples": {
			outputs: 3,
			samples: true,
			mode:    0,
			active:  model.Classification,
		},
		"to-regression": {
			outputs: 3,
			mode:    1,
			active:  model.Regression,
		},
		"invalid-high": {
			outputs: 3,
			mode:    2,
			err:     model.ErrInvalidValue,
			active:  model.Regression,
		},
		"invalid-negative": {
			outputs: 3,
			mode:    -1,
			err:     model.ErrInvalidValue,
			active:  model.Regression,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, _ := newTestMLP(t)
			require.NoError(t, m.SetMode(int(model.Regression)))
			require.NoError(t, m.SetNumOutputs(tt.outputs))
			if tt.samples {
				addRegression(t, m)
			}

			err := m.SetMode(tt.mode)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.active, m.Mode())
			if tt.active == model.Classification {
				assert.Equal(t, 1, m.NumOutputs())
			}
		})
	}
}

func TestMLP_SetNumOutputs(t *testing.T) {

	type test struct {
		mode    model.Mode
		n       int
		err     error
		outputs int
	}

	tests := map[string]test{
		"regression-resize": {
			mode:    model.Regression,
			n:       3,
			outputs: 3,
		},
		"regression-zero": {
			mode:    model.Regression,
			n:       0,
			err:     model.ErrInvalidValue,
			outputs: 1,
		},
		"classification-one": {
			mode:    model.Classification,
			n:       1,
			outputs: 1,
		},
		"classification-many": {
			mode:    model.Classification,
			n:       2,
			err:     model.ErrInvalidValue,
			outputs: 1,
		},
		"classification-negative": {
			mode:    model.Classification,
			n:       -1,
			err:     model.ErrInvalidValue,
			outputs: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, _ := newTestMLP(t)
			require.NoError(t, m.SetMode(int(tt.mode)))
			inputs := m.Regression().NumInputDimensions()

			err := m.SetNumOutputs(tt.n)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.outputs, m.NumOutputs())
			assert.Equal(t, inputs, m.Regression().NumInputDimensions())
			if tt.mode == model.Regression {
				assert.Equal(t, m.NumOutputs(), m.Regression().NumTargetDimensions())
			}
		})
	}
}

func TestMLP_SetNumOutputsWithSamples(t *testing.T) {
	m, _ := newTestMLP(t)
	send(t, m, "mode 1")
	send(t, m, "num_outputs 3")
	addRegression(t, m)
	require.Equal(t, 4, m.Regression().NumInputDimensions())

	err := dispatch(t, m, "num_outputs 2")
	assert.ErrorIs(t, err, model.ErrInvalidValue)
	assert.Equal(t, 3, m.NumOutputs())
	assert.Equal(t, 3, m.Regression().NumTargetDimensions())
	assert.Equal(t, 4, m.Regression().NumInputDimensions())
}

func TestMLP_SetActivationFunction(t *testing.T) {

	type test struct {
		backend int
		line    string
		layer   model.Layer
		value   model.Activation
		err     error
	}

	tests := map[string]test{
		"hidden-tanh": {
			line:  "hidden_activation_function 3",
			layer: model.Hidden,
			value: model.Tanh,
		},
		"output-bipolar": {
			line:  "output_activation_function 2",
			layer: model.Output,
			value: model.BipolarSigmoid,
		},
		"input-out-of-range": {
			line:  "input_activation_function 4",
			layer: model.Input,
			value: model.Linear,
			err:   model.ErrInvalidValue,
		},
		"hidden-negative": {
			line:  "hidden_activation_function -1",
			layer: model.Hidden,
			value: model.Sigmoid,
			err:   model.ErrInvalidValue,
		},
		"deep-bipolar": {
			backend: 1,
			line:    "hidden_activation_function 2",
			layer:   model.Hidden,
			value:   model.Sigmoid,
			err:     model.ErrInvalidValue,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, _ := newTestMLP(t)
			send(t, m, fmt.Sprintf("backend %d", tt.backend))
			err := dispatch(t, m, tt.line)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.value, m.ActivationFunction(tt.layer))
		})
	}
}

func TestMLP_TrainEmpty(t *testing.T) {

	tests := map[string]model.Mode{
		"classification": model.Classification,
		"regression":     model.Regression,
	}

	for name, mode := range tests {
		t.Run(name, func(t *testing.T) {
			m, recorder := newTestMLP(t)
			require.NoError(t, m.SetMode(int(mode)))

			err := dispatch(t, m, "train")
			assert.ErrorIs(t, err, model.ErrNoObservations)
			assert.False(t, m.Trainer().Trained())
			assert.Empty(t, recorder.Outputs)
		})
	}
}

func TestMLP_TrainEmptyKeepsModel(t *testing.T) {
	m, _ := newTestMLP(t)
	addClassification(t, m)
	send(t, m, "train")
	require.True(t, m.Trainer().Trained())

	// the regression dataset is empty
	send(t, m, "mode 1")
	err := dispatch(t, m, "train")
	assert.ErrorIs(t, err, model.ErrNoObservations)
	assert.True(t, m.Trainer().Trained())
}

func TestMLP_ClassificationScenario(t *testing.T) {
	m, recorder := newTestMLP(t)
	addClassification(t, m)

	send(t, m, "train")
	status, ok := recorder.Last(learner.Train)
	require.True(t, ok)
	assert.Equal(t, api.NewOutput(api.StatusOutlet, learner.Train, api.IntAtom(1)), status)

	mode, trained := m.Trainer().Mode()
	assert.True(t, trained)
	assert.Equal(t, m.Mode(), mode)
	assert.Equal(t, 2, m.Trainer().NumInputNeurons())
	assert.Equal(t, model.DefaultNumHiddenNeurons, m.Trainer().NumHiddenNeurons())
	assert.Equal(t, 2, m.Trainer().NumOutputNeurons())

	recorder.Reset()
	send(t, m, "map 0.15 0.15")
	require.Len(t, recorder.Outputs, 2)

	probs := recorder.Outputs[0]
	assert.Equal(t, api.StatusOutlet, probs.Outlet)
	assert.Equal(t, learner.Probs, probs.Selector)
	require.Len(t, probs.Atoms, 4)
	assert.Equal(t, api.IntAtom(1), probs.Atoms[0])
	assert.Equal(t, api.IntAtom(2), probs.Atoms[2])
	assert.InDelta(t, 1.0, probs.Atoms[1].Number+probs.Atoms[3].Number, 1e-6)

	label := recorder.Outputs[1]
	assert.Equal(t, api.MainOutlet, label.Outlet)
	require.Len(t, label.Atoms, 1)
	assert.True(t, label.Atoms[0].IsInt())
	assert.Contains(t, []float64{1, 2}, label.Atoms[0].Number)

	// without probabilities only the label is emitted
	send(t, m, "probs 0")
	recorder.Reset()
	send(t, m, "map 0.85 0.85")
	require.Len(t, recorder.Outputs, 1)
	assert.Equal(t, api.MainOutlet, recorder.Outputs[0].Outlet)
}

func TestMLP_RegressionScenario(t *testing.T) {
	m, recorder := newTestMLP(t)
	send(t, m, "mode 1")
	send(t, m, "num_outputs 3")
	addRegression(t, m)
	require.Equal(t, 10, m.NumSamples())

	send(t, m, "train")
	status, ok := recorder.Last(learner.Train)
	require.True(t, ok)
	assert.Equal(t, []float64{1}, status.Floats())

	assert.True(t, m.Trainer().RegressionModeActive())
	assert.Equal(t, 4, m.Trainer().NumInputNeurons())
	assert.Equal(t, model.DefaultNumHiddenNeurons, m.Trainer().NumHiddenNeurons())
	assert.Equal(t, 3, m.Trainer().NumOutputNeurons())
	assert.True(t, m.Trainer().Epochs() <= m.Trainer().MaxNumEpochs())

	recorder.Reset()
	send(t, m, "map 0.5 0.5 0.25 0.5")
	require.Len(t, recorder.Outputs, 1)
	assert.Equal(t, api.MainOutlet, recorder.Outputs[0].Outlet)
	assert.Len(t, recorder.Outputs[0].Floats(), 3)
}

func TestMLP_Map(t *testing.T) {

	type test struct {
		prepare func(t *testing.T, m *MLP)
		line    string
		err     error
	}

	tests := map[string]test{
		"no-observations": {
			prepare: func(t *testing.T, m *MLP) {},
			line:    "map 0.1 0.1",
			err:     model.ErrNoObservations,
		},
		"not-trained": {
			prepare: func(t *testing.T, m *MLP) {
				addClassification(t, m)
			},
			line: "map 0.1 0.1",
			err:  model.ErrNotTrained,
		},
		"too-short": {
			prepare: func(t *testing.T, m *MLP) {
				addClassification(t, m)
				send(t, m, "train")
			},
			line: "map 0.1",
			err:  model.ErrInvalidInput,
		},
		"too-long": {
			prepare: func(t *testing.T, m *MLP) {
				addClassification(t, m)
				send(t, m, "train")
			},
			line: "map 0.1 0.1 0.1",
			err:  model.ErrInvalidInput,
		},
		"symbol": {
			prepare: func(t *testing.T, m *MLP) {
				addClassification(t, m)
				send(t, m, "train")
			},
			line: "map 0.1 x",
			err:  model.ErrInvalidInput,
		},
		"mode-switched": {
			prepare: func(t *testing.T, m *MLP) {
				addClassification(t, m)
				send(t, m, "train")
				send(t, m, "mode 1")
				addRegression(t, m)
			},
			line: "map 0.1 0.1 0.1 0.1",
			err:  model.ErrModeMismatch,
		},
		"new-label-after-training": {
			prepare: func(t *testing.T, m *MLP) {
				addClassification(t, m)
				send(t, m, "train")
				send(t, m, "add 3 0.5 0.5")
			},
			line: "map 0.1 0.1",
			err:  model.ErrMapFailed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, recorder := newTestMLP(t)
			tt.prepare(t, m)
			recorder.Reset()

			err := dispatch(t, m, tt.line)
			assert.ErrorIs(t, err, tt.err)
			switch tt.err {
			case model.ErrMapFailed:
				// the label is still emitted, but not the probabilities
				require.Len(t, recorder.Outputs, 1)
				assert.Equal(t, api.MainOutlet, recorder.Outputs[0].Outlet)
			default:
				assert.Empty(t, recorder.Outputs)
			}
		})
	}
}

func TestMLP_Error(t *testing.T) {
	m, recorder := newTestMLP(t)

	err := dispatch(t, m, "error")
	assert.ErrorIs(t, err, model.ErrNotTrained)
	assert.Contains(t, err.Error(), "not yet trained")
	assert.Empty(t, recorder.Outputs)

	addClassification(t, m)
	send(t, m, "train")
	recorder.Reset()

	send(t, m, "error")
	require.Len(t, recorder.Outputs, 1)
	assert.Equal(t, api.MainOutlet, recorder.Outputs[0].Outlet)
	assert.Equal(t, learner.Error, recorder.Outputs[0].Selector)
	assert.Equal(t, []float64{m.Trainer().TrainingError()}, recorder.Outputs[0].Floats())
}

func TestMLP_Clear(t *testing.T) {
	m, _ := newTestMLP(t)
	addClassification(t, m)
	send(t, m, "train")
	require.True(t, m.Trainer().Trained())

	send(t, m, "clear")
	assert.False(t, m.Trainer().Trained())
	assert.Equal(t, 0, m.NumSamples())
	assert.Equal(t, 2, m.Classification().NumDimensions())
	assert.ErrorIs(t, dispatch(t, m, "map 0.1 0.1"), model.ErrNoObservations)
}

func TestMLP_History(t *testing.T) {
	m, recorder := newTestMLP(t)
	assert.ErrorIs(t, dispatch(t, m, "history"), model.ErrNotTrained)

	addClassification(t, m)
	send(t, m, "train")
	recorder.Reset()

	send(t, m, "history")
	history, ok := recorder.Last(History)
	require.True(t, ok)
	assert.Equal(t, api.InfoOutlet, history.Outlet)
	assert.Len(t, history.Atoms, m.Trainer().Epochs())
}

func TestMLP_ReadWrite(t *testing.T) {

	type test struct {
		mode model.Mode
		add  func(t *testing.T, m *MLP)
	}

	tests := map[string]test{
		"classification": {
			mode: model.Classification,
			add:  addClassification,
		},
		"regression": {
			mode: model.Regression,
			add: func(t *testing.T, m *MLP) {
				send(t, m, "num_outputs 3")
				addRegression(t, m)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.json")
			persistence := json.NewFileStorage()

			recorder := api.NewRecorder()
			m := New(recorder, persistence)
			require.NoError(t, m.SetMode(int(tt.mode)))
			tt.add(t, m)

			send(t, m, "write "+path)
			status, ok := recorder.Last(learner.Write)
			require.True(t, ok)
			assert.Equal(t, []float64{1}, status.Floats())

			other := New(recorder, persistence)
			// start from the other mode, reading must switch it
			require.NoError(t, other.SetMode(int(model.NumModes-1-tt.mode)))
			send(t, other, "read "+path)
			status, ok = recorder.Last(learner.Read)
			require.True(t, ok)
			assert.Equal(t, []float64{1}, status.Floats())

			assert.Equal(t, m.Mode(), other.Mode())
			assert.Equal(t, m.NumSamples(), other.NumSamples())
			assert.Equal(t, m.NumOutputs(), other.NumOutputs())
			assert.Equal(t, m.NumInputDimensions(), other.NumInputDimensions())
		})
	}
}

func TestMLP_ReadMissing(t *testing.T) {
	m, recorder := newTestMLP(t)
	err := dispatch(t, m, "read missing.json")
	assert.ErrorIs(t, err, storage.NotFoundErr)
	status, ok := recorder.Last(learner.Read)
	require.True(t, ok)
	assert.Equal(t, []float64{0}, status.Floats())
	assert.Equal(t, model.Classification, m.Mode())
}

func TestMLP_Attributes(t *testing.T) {

	type test struct {
		value api.Atom
		err   error
	}

	tests := map[string]test{
		"mode":                       {value: api.IntAtom(1)},
		"num_outputs":                {value: api.IntAtom(1)},
		"num_hidden":                 {value: api.IntAtom(5)},
		"min_epochs":                 {value: api.IntAtom(3)},
		"max_epochs":                 {value: api.IntAtom(30)},
		"min_change":                 {value: api.FloatAtom(0.001)},
		"training_rate":              {value: api.FloatAtom(0.3)},
		"momentum":                   {value: api.FloatAtom(0.7)},
		"gamma":                      {value: api.FloatAtom(1)},
		"null_rejection":             {value: api.IntAtom(1)},
		"null_rejection_coeff":       {value: api.FloatAtom(2.5)},
		"input_activation_function":  {value: api.IntAtom(3)},
		"hidden_activation_function": {value: api.IntAtom(2)},
		"output_activation_function": {value: api.IntAtom(0)},
		"rand_training_iterations":   {value: api.IntAtom(4)},
		"use_validation_set":         {value: api.IntAtom(0)},
		"validation_set_size":        {value: api.IntAtom(40)},
		"randomize_training_order":   {value: api.IntAtom(1)},
		"scaling":                    {value: api.IntAtom(0)},
		"probs":                      {value: api.IntAtom(0)},
		"backend":                    {value: api.IntAtom(1)},
		"num_hidden-zero":            {value: api.IntAtom(0), err: model.ErrInvalidValue},
		"min_epochs-zero":            {value: api.IntAtom(0), err: model.ErrInvalidValue},
		"max_epochs-negative":        {value: api.IntAtom(-2), err: model.ErrInvalidValue},
		"training_rate-zero":         {value: api.FloatAtom(0), err: model.ErrInvalidValue},
		"momentum-negative":          {value: api.FloatAtom(-0.1), err: model.ErrInvalidValue},
		"gamma-negative":             {value: api.FloatAtom(-1), err: model.ErrInvalidValue},
		"null_rejection-two":         {value: api.IntAtom(2), err: model.ErrInvalidValue},
		"validation_set_size-zero":   {value: api.IntAtom(0), err: model.ErrInvalidValue},
		"backend-two":                {value: api.IntAtom(2), err: model.ErrInvalidValue},
		"mode-symbol":                {value: api.SymbolAtom("regression"), err: model.ErrInvalidValue},
		"training_rate-nan":          {value: api.FloatAtom(math.NaN()), err: model.ErrInvalidValue},
		"momentum-nan":               {value: api.FloatAtom(math.NaN()), err: model.ErrInvalidValue},
		"gamma-inf":                  {value: api.FloatAtom(math.Inf(1)), err: model.ErrInvalidValue},
		"min_change-nan":             {value: api.FloatAtom(math.NaN()), err: model.ErrInvalidValue},
		"null_rejection_coeff-nan":   {value: api.FloatAtom(math.NaN()), err: model.ErrInvalidValue},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, recorder := newTestMLP(t)
			attribute := name
			if i := strings.Index(name, "-"); i > 0 {
				attribute = name[:i]
			}
			before, err := m.Registry().Get(attribute)
			require.NoError(t, err)

			err = m.Dispatch(api.NewMessage(attribute, tt.value))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}

			recorder.Reset()
			send(t, m, "get "+attribute)
			require.Len(t, recorder.Outputs, 1)
			value := recorder.Outputs[0]
			assert.Equal(t, api.InfoOutlet, value.Outlet)
			assert.Equal(t, attribute, value.Selector)
			require.Len(t, value.Atoms, 1)
			if tt.err != nil {
				assert.Equal(t, before, value.Atoms[0])
			} else {
				assert.InDelta(t, tt.value.Number, value.Atoms[0].Number, 1e-9)
			}
		})
	}
}

func TestMLP_ActivationDocs(t *testing.T) {
	m, _ := newTestMLP(t)
	output, err := m.Registry().Attribute("output_activation_function")
	require.NoError(t, err)
	assert.Contains(t, output.Doc, "softmax")

	hidden, err := m.Registry().Attribute("hidden_activation_function")
	require.NoError(t, err)
	assert.NotContains(t, hidden.Doc, "softmax")
}

func TestMLP_NaNLeavesTrainingIntact(t *testing.T) {
	m, _ := newTestMLP(t)
	addClassification(t, m)
	assert.ErrorIs(t, dispatch(t, m, "training_rate nan"), model.ErrInvalidValue)
	assert.ErrorIs(t, dispatch(t, m, "gamma inf"), model.ErrInvalidValue)
	send(t, m, "train")
	assert.True(t, m.Trainer().Trained())
}

func TestMLP_AttributeNames(t *testing.T) {
	m, recorder := newTestMLP(t)
	send(t, m, "attributes")
	require.Len(t, recorder.Outputs, 1)
	names := make([]string, len(recorder.Outputs[0].Atoms))
	for i, a := range recorder.Outputs[0].Atoms {
		names[i] = a.Symbol
	}
	assert.Equal(t, m.Registry().Names(), names)
	assert.Contains(t, names, "randomize_training_order")
	assert.Contains(t, names, "probs")

	err := dispatch(t, m, "get colour")
	assert.ErrorIs(t, err, attr.ErrUnknownAttribute)
}

func TestMLP_Defaults(t *testing.T) {
	m, _ := newTestMLP(t)
	expected := map[string]float64{
		"mode":                       0,
		"num_outputs":                1,
		"num_hidden":                 2,
		"min_epochs":                 10,
		"min_change":                 0.01,
		"training_rate":              0.1,
		"momentum":                   0.5,
		"gamma":                      2,
		"null_rejection":             0,
		"null_rejection_coeff":       0.9,
		"input_activation_function":  0,
		"hidden_activation_function": 1,
		"output_activation_function": 1,
		"use_validation_set":         1,
		"validation_set_size":        20,
		"randomize_training_order":   0,
		"scaling":                    1,
		"probs":                      1,
		"backend":                    0,
	}
	for name, value := range expected {
		v, err := m.Registry().Get(name)
		require.NoError(t, err)
		assert.Equal(t, value, v.Number, name)
	}
}

func TestMLP_Info(t *testing.T) {
	m, recorder := newTestMLP(t)
	addClassification(t, m)
	send(t, m, "train")
	recorder.Reset()

	send(t, m, "info")
	info := make(map[string]api.Atom)
	for _, o := range recorder.Outlet(api.InfoOutlet) {
		require.Len(t, o.Atoms, 2)
		info[o.Atoms[0].Symbol] = o.Atoms[1]
	}
	assert.Equal(t, api.SymbolAtom(m.ID().String()), info["id"])
	assert.Equal(t, api.IntAtom(20), info["samples"])
	assert.Equal(t, api.IntAtom(1), info["trained"])
	assert.Equal(t, api.SymbolAtom("xmachina"), info["backend"])
	assert.Equal(t, api.IntAtom(m.Trainer().Epochs()), info["epochs"])
}

func TestMLP_UnknownMessage(t *testing.T) {
	m, _ := newTestMLP(t)
	err := dispatch(t, m, "predict 0.1 0.2")
	assert.ErrorIs(t, err, model.ErrUnknownMessage)
}
