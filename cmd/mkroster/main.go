// mkroster writes a synthetic ward roster CSV in the export template shape:
// three preamble lines, the header on line four, then data rows. Useful for
// tests and demos without touching real patient data.
// Usage: go run ./cmd/mkroster --out testdata/roster.csv --rows 20 --with-errors
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/nmedina/wardload/internal/model"
)

var (
	firstNames = []string{"Juan", "María", "Carlos", "Ana", "Jorge", "Lucía", "Pedro", "Sofía", "Diego", "Elena"}
	lastNames  = []string{"Pérez", "González", "Rodríguez", "Fernández", "López", "Martínez", "Gómez", "Díaz"}
	complaints = []string{"cefalea", "disartria", "hemiparesia izquierda", "pérdida de fuerza MSD", "vértigo", "crisis convulsiva"}
	diagnoses  = []string{"ACV isquémico", "AIT", "HSA", "estatus epiléptico", "sme vertiginoso"}
	plans      = []string{"TAC control 24hs", "RMN + consulta NRL", "alta con control ambulatorio", "pase a UTI", "EEG + ajuste medicación"}
)

func main() {
	out := flag.String("out", "testdata/roster.csv", "output CSV path")
	rows := flag.Int("rows", 20, "number of data rows")
	withErrors := flag.Bool("with-errors", false, "include rows with validation problems")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Preamble: the three template lines every export carries before the header.
	fmt.Fprintln(f, "PASE DE GUARDIA - NEUROLOGIA")
	fmt.Fprintln(f, "Completar una fila por paciente. No modificar los encabezados.")
	fmt.Fprintln(f, "")

	w := csv.NewWriter(f)
	header := []string{
		model.ColBed, model.ColNationalID, model.ColFullName, model.ColAge,
		model.ColHistory, model.ColComplaint, model.ColPhysicalExam,
		model.ColStudies, model.ColSeverity, model.ColDiagnosis, model.ColPlan,
	}
	if err := w.Write(header); err != nil {
		fmt.Fprintf(os.Stderr, "write header: %v\n", err)
		os.Exit(1)
	}

	for i := 0; i < *rows; i++ {
		rec := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", 20000000+rng.Intn(25000000)),
			firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
			fmt.Sprintf("%d", 18+rng.Intn(80)),
			"HTA, DBT",
			complaints[rng.Intn(len(complaints))],
			fmt.Sprintf("NIHSS %d", rng.Intn(20)),
			"lab + TAC",
			model.Severities[rng.Intn(len(model.Severities))],
			diagnoses[rng.Intn(len(diagnoses))],
			plans[rng.Intn(len(plans))],
		}

		if *withErrors {
			switch i % 5 {
			case 1:
				rec[1] = "" // missing DNI
			case 2:
				rec[8] = "VI" // severity outside the accepted set
			case 3:
				rec[3] = "" // missing age (warning only)
			}
		}

		if err := w.Write(rec); err != nil {
			fmt.Fprintf(os.Stderr, "write row: %v\n", err)
			os.Exit(1)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "flush: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d rows to %s\n", *rows, *out)
}
