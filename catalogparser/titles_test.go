package catalogparser

import (
	"log/slog"
	"reflect"
	"testing"

	"github.com/omimtools/catalog-api/catalogparser/entities"
)

func TestParseTitlesBasicRecords(t *testing.T) {
	lines := []string{
		"# Copyright (c) 1966-2021 Johns Hopkins University OMIM",
		"Asterisk\t100640\tALDEHYDE DEHYDROGENASE 1 FAMILY, MEMBER A1; ALDH1A1\tALDH1; ACETALDEHYDE DEHYDROGENASE 1\t",
		"Number Sign\t100100\tPRUNE BELLY SYNDROME; PBS\t\tABDOMINAL MUSCLES, ABSENCE OF, INCLUDED",
		"Percent\t100070\tAORTIC ANEURYSM, FAMILIAL ABDOMINAL, 1; AAA1\t\t",
		"Plus\t100680\tCHOLINERGIC RECEPTOR, NICOTINIC, ALPHA POLYPEPTIDE 1\t\t",
		"NULL\t100050\tAARSKOG SYNDROME, AUTOSOMAL DOMINANT\t\t",
		"",
		"\t\t\t\t",
	}

	log, _ := newCaptureLogger()
	titles, replaced := ParseTitles(lines, log)

	if len(titles) != 5 {
		t.Fatalf("got %d title records, want 5", len(titles))
	}
	if len(replaced) != 0 {
		t.Fatalf("got %d replacement records, want 0", len(replaced))
	}

	wantTypes := map[string]entities.EntryType{
		"100640": entities.Gene,
		"100100": entities.Phenotype,
		"100070": entities.HeritablePhenotypicMarker,
		"100680": entities.HasAffectedFeature,
		"100050": entities.Suspected,
	}
	for mim, wantType := range wantTypes {
		record, ok := titles[mim]
		if !ok {
			t.Errorf("missing title record for %s", mim)
			continue
		}
		if record.Type != wantType {
			t.Errorf("titles[%s].Type = %s, want %s", mim, record.Type, wantType)
		}
	}

	gene := titles["100640"]
	if gene.PreferredLabel != "ALDEHYDE DEHYDROGENASE 1 FAMILY, MEMBER A1; ALDH1A1" {
		t.Errorf("unexpected preferred label %q", gene.PreferredLabel)
	}
	wantAlts := []string{"ALDH1", "ACETALDEHYDE DEHYDROGENASE 1"}
	if !reflect.DeepEqual(gene.AlternativeLabels, wantAlts) {
		t.Errorf("alternative labels = %v, want %v", gene.AlternativeLabels, wantAlts)
	}
	included := titles["100100"].IncludedLabels
	if !reflect.DeepEqual(included, []string{"ABDOMINAL MUSCLES, ABSENCE OF, INCLUDED"}) {
		t.Errorf("included labels = %v", included)
	}
}

func TestParseTitlesMovedTo(t *testing.T) {
	lines := []string{
		"Caret\t100100\tMOVED TO 200200 AND 300300\t\t",
	}

	log, _ := newCaptureLogger()
	_, replaced := ParseTitles(lines, log)

	want := []string{"200200", "300300"}
	if !reflect.DeepEqual(replaced["100100"], want) {
		t.Errorf("replaced[100100] = %v, want %v", replaced["100100"], want)
	}
}

func TestParseTitlesRemovedWithoutSuccessor(t *testing.T) {
	lines := []string{
		"Caret\t100500\tREMOVED FROM DATABASE\t\t",
	}

	log, _ := newCaptureLogger()
	titles, replaced := ParseTitles(lines, log)

	successors, ok := replaced["100500"]
	if !ok {
		t.Fatal("removed entry missing from replacement map")
	}
	if len(successors) != 0 {
		t.Errorf("successors = %v, want empty", successors)
	}
	if titles["100500"].Type != entities.Obsolete {
		t.Errorf("type = %s, want obsolete", titles["100500"].Type)
	}
}

func TestParseTitlesUnrepairableSuccessorsFiltered(t *testing.T) {
	lines := []string{
		"Caret\t100100\tMOVED TO 200200 AND notanid\t\t",
	}

	log, _ := newCaptureLogger()
	_, replaced := ParseTitles(lines, log)

	if !reflect.DeepEqual(replaced["100100"], []string{"200200"}) {
		t.Errorf("replaced[100100] = %v, want only the repairable successor", replaced["100100"])
	}
}

func TestParseTitlesUnknownMarker(t *testing.T) {
	lines := []string{
		"Tilde\t123456\tSOME LABEL\t\t",
	}

	log, handler := newCaptureLogger()
	titles, _ := ParseTitles(lines, log)

	if _, ok := titles["123456"]; ok {
		t.Error("unknown marker line must not produce a title record")
	}
	if n := handler.countLevel(slog.LevelError); n != 1 {
		t.Errorf("unknown marker logged %d errors, want 1", n)
	}
}

func TestParseTitlesWrongFieldCountSkipped(t *testing.T) {
	lines := []string{
		"Asterisk\t100640\tonly three fields",
		"Asterisk\t100650\tGOOD RECORD\t\t",
	}

	log, handler := newCaptureLogger()
	titles, _ := ParseTitles(lines, log)

	if _, ok := titles["100640"]; ok {
		t.Error("short line must be skipped")
	}
	if _, ok := titles["100650"]; !ok {
		t.Error("well-formed line after a bad one must still parse")
	}
	if handler.countLevel(slog.LevelWarn) == 0 {
		t.Error("bad field count should be logged at warning level")
	}
}
