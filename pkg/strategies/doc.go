// Package strategies holds the policies that decide what a project file
// becomes when a template is rolled up onto the project.
//
// Every strategy maps (current target contents or none, template
// contents, template metadata) to the new file contents and is otherwise
// side-effect free. Strategies are looked up by name with New, which is
// how scaraplate.yaml refers to them:
//
//	Overwrite           template wins unconditionally
//	IfMissing           template is written only for new files
//	SortedUniqueLines   union of lines, sorted, deduplicated
//	TemplateHash        template plus a provenance comment; files synced
//	                    to the current clean commit are left alone
//	PythonTemplateHash  TemplateHash with `# noqa` on long comment lines
//	GroovyTemplateHash  TemplateHash with `//` comments
//	PylintrcMerge       template .pylintrc keeping the target's
//	                    [TYPECHECK] ignored-modules/ignored-classes
//	SetupcfgMerge       template setup.cfg keeping project sections and
//	                    merging dependency lists
package strategies
