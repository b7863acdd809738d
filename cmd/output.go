package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/qres-lab/mbfit/mbfit"
)

// WriteCurveCSV writes the dense fitted curve and its prediction band to a
// CSV file for external plotting.
func WriteCurveCSV(fileName string, out *mbfit.FitOutcome) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fileName, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	fmt.Fprintln(writer, "temperature,prediction,upper,lower")
	for i := range out.DenseT {
		fmt.Fprintf(writer, "%g,%g,%g,%g\n", out.DenseT[i], out.Prediction[i], out.Upper[i], out.Lower[i])
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", fileName, err)
	}
	return nil
}
