package view

import "html/template"

const (
	TemplatePage = "page"
	tmplTaskList = "tasklist"
)

// Templates parses the full page and the task list fragment into one set.
// Execute by name: "page" for gin's HTML renderer, "tasklist" for pushes.
func Templates() *template.Template {
	t := template.Must(template.New(TemplatePage).Parse(pageHTML))
	return template.Must(t.New(tmplTaskList).Parse(taskListHTML))
}

const taskListHTML = `{{if .Empty}}<p class="empty">{{.EmptyMessage}}</p>{{else}}{{range .Cards}}
<div class="task-card{{if .Completed}} completed{{end}}" data-task-id="{{.ID}}">
  <div class="task-header">
    <div class="task-title"{{if .Completed}} style="text-decoration: line-through"{{end}}>{{.Title}}</div>
    <span class="priority-badge priority-{{.Priority}}">{{.Priority}}</span>
  </div>
  <div class="task-desc">{{.Description}}</div>
  <div class="task-meta">
    <span class="task-due">{{.Due}}</span>
    <div class="task-actions">
      <form method="post" action="/tasks/{{.ID}}/toggle"><button class="btn btn-toggle" type="submit">{{.ToggleLabel}}</button></form>
      <a class="btn btn-edit" href="/tasks/{{.ID}}/edit">Edit</a>
      <a class="btn btn-delete" href="/tasks/{{.ID}}/delete">Delete</a>
    </div>
  </div>
</div>{{end}}{{end}}`

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Task Scheduler</title>
</head>
<body data-panel="{{.Panel}}">
{{if .Notice}}<div id="toast" class="toast toast-{{.Notice.Kind}}">{{.Notice.Message}}</div>{{else}}<div id="toast" class="toast hidden"></div>{{end}}
{{if eq .Panel "auth"}}
<div id="auth-container">
  {{if eq .AuthView "register"}}
  <div id="register-view" class="active">
    <h2>Create account</h2>
    <form id="register-form" method="post" action="/register">
      <input id="reg-username" name="username" required placeholder="Username">
      <input id="reg-password" name="password" type="password" required placeholder="Password">
      <button type="submit">Register</button>
    </form>
    <a id="show-login" href="/auth/login">Already have an account? Log in</a>
  </div>
  {{else}}
  <div id="login-view" class="active">
    <h2>Welcome back</h2>
    <form id="login-form" method="post" action="/login">
      <input id="login-username" name="username" required placeholder="Username">
      <input id="login-password" name="password" type="password" required placeholder="Password">
      <button type="submit">Log in</button>
    </form>
    <a id="show-register" href="/auth/register">No account? Register</a>
  </div>
  {{end}}
</div>
{{else}}
<nav id="navbar">
  <span id="nav-username">{{.Username}}</span>
  <form method="post" action="/logout"><button id="logout-btn" type="submit">Logout</button></form>
</nav>
<main id="dashboard-view">
  <p id="task-stats">{{.Summary}}</p>
  <a id="add-task-btn" class="btn" href="/tasks/new">Add task</a>
  <div id="task-list">{{template "tasklist" .}}</div>
</main>
{{with .Editor}}
<div id="task-modal" class="modal">
  <h3 id="modal-title">{{.Heading}}</h3>
  <form id="task-form" method="post" action="/tasks">
    <input type="hidden" id="task-id" name="id" value="{{.ID}}">
    <input id="task-title" name="title" required value="{{.Title}}" placeholder="Title">
    <textarea id="task-desc" name="description" placeholder="Description">{{.Description}}</textarea>
    <input id="task-date" name="dueDate" type="date" required value="{{.DueDate}}">
    <select id="task-priority" name="priority">
      <option value="low"{{if eq .Priority "low"}} selected{{end}}>low</option>
      <option value="medium"{{if eq .Priority "medium"}} selected{{end}}>medium</option>
      <option value="high"{{if eq .Priority "high"}} selected{{end}}>high</option>
    </select>
    <button type="submit">Save</button>
  </form>
  <form method="post" action="/tasks/editor/close"><button id="cancel-task" type="submit">Cancel</button></form>
</div>
{{end}}
{{with .Confirm}}
<div id="confirm-modal" class="modal">
  <p>{{.Prompt}}</p>
  <p class="confirm-title">{{.Title}}</p>
  <form method="post" action="/tasks/{{.TaskID}}/delete">
    <input type="hidden" name="confirmation" value="{{.Token}}">
    <button id="confirm-delete" type="submit">Delete</button>
  </form>
  <form method="post" action="/tasks/{{.TaskID}}/delete/cancel"><button type="submit">Cancel</button></form>
</div>
{{end}}
{{end}}
<script>
(function () {
  var panel = document.body.dataset.panel;
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type !== "render") return;
    var d = msg.data;
    if (d.panel !== panel) { location.reload(); return; }
    var toast = document.getElementById("toast");
    if (d.notice) {
      toast.textContent = d.notice.message;
      toast.className = "toast toast-" + d.notice.kind;
    } else {
      toast.className = "toast hidden";
    }
    if (panel !== "dashboard") return;
    document.getElementById("task-list").innerHTML = d.html;
    document.getElementById("task-stats").textContent = d.summary;
  };
})();
</script>
</body>
</html>`
