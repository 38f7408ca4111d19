package catalogparser

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTestExports(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"mimTitles.txt": "# Copyright\n" +
			"Asterisk\t100640\tALDH1A1 GENE\t\t\n" +
			"Number Sign\t100800\tACHONDROPLASIA; ACH\t\t\n" +
			"Caret\t100001\tMOVED TO 100640\t\t\n",
		"mim2gene.txt": "# MIM Number\tType\tEntrez\tSymbol\tEnsembl\n" +
			"100640\tgene\t216\tALDH1A1\tENSG00000165092\n" +
			"100800\tphenotype\t\t\t\n",
		"mim2gene.tsv": "MIM Number\tMIM Entry Type\tEntrez Gene ID (NCBI)\tApproved Gene Symbol (HGNC)\tEnsembl Gene ID (Ensembl)\n" +
			"100640\tgene\t216\tALDH1A1\tENSG00000165092\n",
		"genemap2.tsv": "Chromosome\tGenomic Position Start\tGenomic Position End\tCyto Location\tComputed Cyto Location\tMIM Number\tGene Symbols\tGene Name\tApproved Gene Symbol\tEntrez Gene ID\tEnsembl Gene ID\tComments\tPhenotypes\tMouse Gene Symbol/ID\n" +
			"chr9\t1\t2\t9q21.13\t\t100640\tALDH1A1\taldehyde dehydrogenase\tALDH1A1\t216\tENSG00000165092\t\t\t\n",
		"phenotypicSeries.txt": "# Phenotypic Series Title\tPS number\n" +
			"PS100800\tAchondroplasia spectrum\n" +
			"PS100800\t100800\tACHONDROPLASIA\n",
		"morbidmap.txt": "# Phenotype\tGene Symbols\tMIM Number\tCyto Location\n" +
			"Achondroplasia, 100800 (3)\tFGFR3\t134934\t4p16.3\n",
		"omim.ttl": "OMIM:100800 a owl:Class ;\n" +
			"    oboInOwl:hasDbXref \"PMID:12345\" ;\n" +
			"    oboInOwl:hasDbXref \"UMLS:C0001080\" .\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestParseCatalog(t *testing.T) {
	dir := writeTestExports(t)
	log, _ := newCaptureLogger()

	catalog, err := ParseCatalog(dir, "", false, log)
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}

	if len(catalog.Titles) != 3 {
		t.Errorf("titles = %d, want 3", len(catalog.Titles))
	}
	if !reflect.DeepEqual(catalog.Replacements["100001"], []string{"100640"}) {
		t.Errorf("replacements[100001] = %v", catalog.Replacements["100001"])
	}
	if catalog.GeneMap["100640"] != "216" {
		t.Errorf("gene map = %v", catalog.GeneMap)
	}
	if catalog.Nomenclature["100640"] != "ALDH1A1" {
		t.Errorf("nomenclature = %v", catalog.Nomenclature)
	}
	if catalog.Series["100800"].Title != "Achondroplasia spectrum" {
		t.Errorf("series = %+v", catalog.Series["100800"])
	}
	if catalog.MorbidMap["134934"].PhenotypeMim != "100800" {
		t.Errorf("morbid map = %+v", catalog.MorbidMap["134934"])
	}
	if !reflect.DeepEqual(catalog.References.PubMed["100800"], []string{"12345"}) {
		t.Errorf("pubmed refs = %v", catalog.References.PubMed["100800"])
	}
	if catalog.HgncSymbolToID != nil {
		t.Error("HGNC map should be absent when the file is missing")
	}
}

func TestParseCatalogIsPure(t *testing.T) {
	dir := writeTestExports(t)
	log, _ := newCaptureLogger()

	first, err := ParseCatalog(dir, "", false, log)
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	second, err := ParseCatalog(dir, "", false, log)
	if err != nil {
		t.Fatalf("second parse failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("re-parsing the same inputs must yield identical catalogs")
	}
}

func TestParseCatalogMissingFile(t *testing.T) {
	dir := t.TempDir()
	log, _ := newCaptureLogger()

	if _, err := ParseCatalog(dir, "", false, log); err == nil {
		t.Fatal("missing source files must be a hard error")
	}
}

func TestParseCatalogMissingTurtleFile(t *testing.T) {
	dir := writeTestExports(t)
	if err := os.Remove(filepath.Join(dir, "omim.ttl")); err != nil {
		t.Fatal(err)
	}
	log, _ := newCaptureLogger()

	_, err := ParseCatalog(dir, "", false, log)
	if err == nil {
		t.Fatal("missing turtle file must be a hard error")
	}
	if !strings.Contains(err.Error(), "omim.ttl must be provided") {
		t.Errorf("error should name the out-of-band input, got %q", err)
	}
}

func TestParseCatalogWithHgncTable(t *testing.T) {
	dir := writeTestExports(t)
	hgnc := "hgnc_id\tsymbol\tname\nHGNC:5\tA1BG\talpha-1-B glycoprotein\n"
	if err := os.WriteFile(filepath.Join(dir, "hgnc_complete_set.txt"), []byte(hgnc), 0644); err != nil {
		t.Fatal(err)
	}

	log, _ := newCaptureLogger()
	catalog, err := ParseCatalog(dir, "", false, log)
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}
	if catalog.HgncSymbolToID["A1BG"] != "5" {
		t.Errorf("HgncSymbolToID = %v", catalog.HgncSymbolToID)
	}
}
