package api

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/korjavin/fitnourish/internal/nutrition"
)

type pageData struct {
	Title string
	Names []string
	Goals []string
}

// The page carries ?api_key= from its own URL through to the API calls.
var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; }
.row { display: flex; gap: 2rem; align-items: flex-start; }
.col { flex: 1; }
#summary table { border-collapse: collapse; }
#summary td, #summary th { border: 1px solid #ccc; padding: 0.25rem 0.75rem; }
fieldset { border: none; padding: 0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Select a food and a fitness goal to see its nutrition summary and macro breakdown.</p>
<div class="row">
  <div class="col">
    <label for="food">Food</label>
    <select id="food">
      <option value="">--</option>
      {{- range .Names}}
      <option value="{{.}}">{{.}}</option>
      {{- end}}
    </select>
    <fieldset id="goal">
      <legend>Goal</legend>
      {{- range $i, $g := .Goals}}
      <label><input type="radio" name="goal" value="{{$g}}"{{if eq $i 0}} checked{{end}}> {{$g}}</label>
      {{- end}}
    </fieldset>
  </div>
  <div class="col">
    <div id="summary"></div>
    <img id="chart" alt="Macro Breakdown" hidden>
  </div>
</div>
<script>
(function () {
  var key = new URLSearchParams(location.search).get("api_key");
  function url(path, params) {
    var q = new URLSearchParams(params);
    if (key) { q.set("api_key", key); }
    return path + "?" + q.toString();
  }
  function goal() {
    var el = document.querySelector('input[name="goal"]:checked');
    return el ? el.value : "";
  }
  // seq drops responses that arrive after a newer request was sent.
  var seq = 0;
  function refresh() {
    var food = document.getElementById("food").value;
    var mine = ++seq;
    fetch(url("/api/v1/present", {food: food, goal: goal()}))
      .then(function (r) { return r.json(); })
      .then(function (res) {
        if (mine !== seq) { return; }
        document.getElementById("summary").innerHTML = res.html;
        var img = document.getElementById("chart");
        if (res.kind === "ok") {
          img.src = url("/api/v1/chart.svg", {food: food});
          img.hidden = false;
        } else {
          img.hidden = true;
        }
      });
  }
  document.getElementById("food").addEventListener("change", refresh);
  document.getElementById("goal").addEventListener("change", refresh);
})();
</script>
</body>
</html>
`))

// Page serves the interactive food and goal picker.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "FitNourish", Names: h.Data.Names()}
	for _, g := range nutrition.Goals {
		data.Goals = append(data.Goals, g.String())
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		slog.Error("page render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
