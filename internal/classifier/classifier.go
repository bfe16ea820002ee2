// Package classifier wraps the pre-trained risk model as an opaque
// collaborator: given an ordered feature vector it returns an integer class
// label and a class-probability vector. The rest of the system never looks
// inside it.
package classifier

// Model is the external classifier contract. Implementations must be
// read-only after load and safe for concurrent use.
type Model interface {
	// Predict returns the integer class label for a feature vector
	Predict(vector []float64) (int, error)
	// PredictProba returns one probability per class, aligned to the label
	// codec's class order, summing to 1 within float tolerance
	PredictProba(vector []float64) ([]float64, error)
	// NumClasses returns the size of the label space
	NumClasses() int
	// NumFeatures returns the expected feature vector length
	NumFeatures() int
}
