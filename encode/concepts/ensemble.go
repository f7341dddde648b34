package concepts

import (
	"strconv"

	"github.com/mmp/marskit/encode"
	"github.com/mmp/marskit/mars"
)

// ensemble is the Preset-stage, ProductDefinition-section concept that
// sets the ensemble member keys (Product Definition Template 4.1/4.11)
// when the request names an ensemble member ("number") or a cluster
// ("cluster"). This concept supplements the distilled specification: the
// original metkit encoder derives these keys the same way but the
// distillation did not carry an explicit worked example, so its shape is
// grounded on mars/types' "number"/"cluster" keyword handling plus
// product/template48.go's statistical-range fields it composes with.
func init() {
	encode.RegisterConcept(&encode.Concept{
		Name:    "ensemble",
		Stage:   encode.StagePreset,
		Section: encode.SectionProductDefinition,
		Match:   matchEnsemble,
		Entries: map[encode.Variant]encode.Entry{
			"default": ensembleDefault,
			"cluster": ensembleCluster,
		},
	})
}

func matchEnsemble(req *mars.Request, opt encode.Dict) (encode.Variant, bool) {
	if req.Has("cluster") {
		return "cluster", true
	}
	if req.Has("number") {
		return "default", true
	}
	return "", false
}

func ensembleDefault(req *mars.Request, opt encode.Dict, out encode.Dict) error {
	number, err := strconv.Atoi(firstValue(req, "number"))
	if err != nil {
		return &encode.DeductionError{Keyword: "number", Message: "not an integer ensemble member"}
	}
	total := number
	if n, ok := opt.GetOptLong("numberOfForecastsInEnsemble"); ok {
		total = int(n)
	}
	out.SetLong("perturbationNumber", int64(number))
	out.SetLong("numberOfForecastsInEnsemble", int64(total))
	out.SetLong("typeOfEnsembleForecast", 3) // perturbed
	return nil
}

func ensembleCluster(req *mars.Request, opt encode.Dict, out encode.Dict) error {
	cluster, err := strconv.Atoi(firstValue(req, "cluster"))
	if err != nil {
		return &encode.DeductionError{Keyword: "cluster", Message: "not an integer cluster identifier"}
	}
	out.SetLong("clusterIdentifier", int64(cluster))
	out.SetLong("typeOfEnsembleForecast", 192) // local: cluster mean
	return nil
}
