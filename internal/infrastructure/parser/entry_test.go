package parser

import (
	"reflect"
	"testing"
	"time"
)

func TestExtractEntryFull(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `
<dl>
  <dt>
    <a href="/abs/2406.00001" title="Abstract">arXiv:2406.00001</a>
    <a href="/pdf/2406.00001" title="Download PDF">pdf</a>
  </dt>
  <dd>
    <div class="list-title mathjax">Title: A Fast and Robust Method for 3D Pose Estimation</div>
    <div class="list-authors">Authors: Alice Example, Bob Sample</div>
    <div class="list-subjects">Subjects:
      <span class="primary-subject">Computer Vision and Pattern Recognition (cs.CV)</span>;
      Robotics (cs.RO)
    </div>
    <p class="mathjax">Abstract: We propose a new approach to pose estimation.</p>
  </dd>
</dl>`)

	date := time.Date(2024, time.June, 3, 15, 30, 0, 0, time.UTC)
	article := extractEntry(doc.Find("dt").First(), doc.Find("dd").First(), "New submissions", date)
	if article == nil {
		t.Fatal("expected an article")
	}

	if article.ID != "arXiv:2406.00001" {
		t.Errorf("ID = %q", article.ID)
	}
	if article.AbsURL != "https://arxiv.org/abs/2406.00001" {
		t.Errorf("AbsURL = %q", article.AbsURL)
	}
	if article.PDFURL != "https://arxiv.org/pdf/2406.00001" {
		t.Errorf("PDFURL = %q", article.PDFURL)
	}
	if article.Title != "A Fast and Robust Method for 3D Pose Estimation" {
		t.Errorf("Title = %q", article.Title)
	}
	if want := []string{"Alice Example", "Bob Sample"}; !reflect.DeepEqual(article.Authors, want) {
		t.Errorf("Authors = %v, want %v", article.Authors, want)
	}
	if article.Abstract != "We propose a new approach to pose estimation." {
		t.Errorf("Abstract = %q", article.Abstract)
	}
	if article.PrimarySubject != "Computer Vision and Pattern Recognition (cs.CV)" {
		t.Errorf("PrimarySubject = %q", article.PrimarySubject)
	}
	if len(article.Subjects) != 2 {
		t.Errorf("Subjects = %v", article.Subjects)
	}
	if article.SectionLabel != "New submissions" {
		t.Errorf("SectionLabel = %q", article.SectionLabel)
	}
	if want := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC); !article.SubmissionDate.Equal(want) {
		t.Errorf("SubmissionDate = %v, want %v", article.SubmissionDate, want)
	}
}

func TestExtractEntryAnchorFallback(t *testing.T) {
	t.Parallel()

	// No title="Abstract" anchor, empty link text: the id comes from the last
	// path segment of the first /abs/ link instead.
	doc := mustDocument(t, `
<dl>
  <dt><a href="https://arxiv.org/abs/2406.00042"></a></dt>
  <dd><div class="list-title">Title: Minimal</div></dd>
</dl>`)

	article := extractEntry(doc.Find("dt").First(), doc.Find("dd").First(), "Replacements", time.Now().UTC())
	if article == nil {
		t.Fatal("expected an article")
	}
	if article.ID != "2406.00042" {
		t.Errorf("ID = %q", article.ID)
	}
	if article.AbsURL != "https://arxiv.org/abs/2406.00042" {
		t.Errorf("AbsURL = %q", article.AbsURL)
	}
	if article.PDFURL != "" {
		t.Errorf("PDFURL = %q, want empty", article.PDFURL)
	}
}

func TestExtractEntryNoAnchor(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `<dl><dt><span>broken</span></dt><dd>text</dd></dl>`)
	if got := extractEntry(doc.Find("dt").First(), doc.Find("dd").First(), "x", time.Now().UTC()); got != nil {
		t.Fatalf("expected nil for an entry without an identifier anchor, got %+v", got)
	}
}

func TestExtractEntryPrimarySubjectFallback(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `
<dl>
  <dt><a href="/abs/2406.00002" title="Abstract">arXiv:2406.00002</a></dt>
  <dd>
    <div class="list-subjects">Subjects: Machine Learning (cs.LG); Robotics (cs.RO)</div>
  </dd>
</dl>`)

	article := extractEntry(doc.Find("dt").First(), doc.Find("dd").First(), "x", time.Now().UTC())
	if article == nil {
		t.Fatal("expected an article")
	}
	if article.PrimarySubject != "Machine Learning (cs.LG)" {
		t.Errorf("PrimarySubject = %q, want the first subject token", article.PrimarySubject)
	}
	if article.Title != "" || article.Abstract != "" || len(article.Authors) != 0 {
		t.Errorf("missing descriptors should stay empty: %+v", article)
	}
}
