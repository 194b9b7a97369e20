package bootgen

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"time"
)

// Namespace is the namespace of the generated file.
const Namespace = "plin-platform.server-boot-generated"

// timestampPrefix starts the only line of the output that varies between
// runs over the same manifest.
const timestampPrefix = "Generated at:"

const bootTemplate = `(ns {{.Namespace}}
  "Auto-generated server bootstrap file.

   This file is generated by {{.Generator}} based on the manifest.
   DO NOT EDIT MANUALLY - changes will be overwritten.

   ` + timestampPrefix + ` {{.GeneratedAt}}"
  (:require [plin.boot :as boot]
            [clojure.string :as str]
            ["path" :as path]

            ;; Auto-generated requires from manifest
{{- range .Imports}}
            [{{.Namespace}} :as {{.Alias}}]
{{- end}}
            ))

;; --- Path Resolution ---

(def user-root (js/process.cwd))

(def framework-root
  (let [cwd (js/process.cwd)]
    (if (str/includes? cwd "node_modules")
      (path/resolve cwd "../..")
      cwd)))

;; --- Plugin List ---
;; Auto-generated from manifest (plugins matching env={{.Env}})

(def server-plugins
  [
{{- range .Imports}}
   {{.Alias}}/plugin
{{- end}}])

;; --- Initially Disabled IDs ---
;; Plugins with :enabled false in manifest

(def initially-disabled-ids #{ {{- keywords .DisabledIDs -}} })

;; --- Main ---

(defn -main [& args]
  (println "PLIN Server Bootstrap (Generated)")
  (println "Framework root:" framework-root)
  (println "User root:" user-root)
  (println "Loading" (count server-plugins) "plugins...")
  (when (seq initially-disabled-ids)
    (println "Initially disabled:" initially-disabled-ids))

  (boot/bootstrap! server-plugins initially-disabled-ids))

(-main)
`

var (
	tmpl = template.Must(template.New("server_boot").
		Funcs(template.FuncMap{"keywords": keywords}).
		Parse(bootTemplate))

	plainKeyword = regexp.MustCompile(`^[A-Za-z*+!_?<>=][A-Za-z0-9*+!_?<>=.\-/]*$`)
)

// Generator names the tool in the generated docstring.
var Generator = "plin-boot"

type templateData struct {
	*Plan
	Namespace   string
	Generator   string
	GeneratedAt string
}

// Render produces the bootstrap source for plan. now is only used for the
// "Generated at" line.
func Render(plan *Plan, now time.Time) (string, error) {
	data := templateData{
		Plan:        plan,
		Namespace:   Namespace,
		Generator:   Generator,
		GeneratedAt: now.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering bootstrap: %w", err)
	}
	return buf.String(), nil
}

// keywords renders ids as space-separated keyword literals. Ids that are
// not valid keyword names are emitted as (keyword "...") calls.
func keywords(ids []string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if plainKeyword.MatchString(id) {
			parts = append(parts, ":"+id)
		} else {
			parts = append(parts, "(keyword "+strconv.Quote(id)+")")
		}
	}
	return strings.Join(parts, " ")
}
